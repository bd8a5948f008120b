package keyboard

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

// DayPagination создаёт ряд "предыдущий / следующий день".
// prefix - префикс для callback (например "day:"), дни нумеруются с 1,
// после последнего дня идёт первый.
func DayPagination(prefix string, day, days int, label func(int) string) []models.InlineKeyboardButton {
	if days <= 1 || day < 1 || day > days {
		return nil
	}

	prev := (day+days-2)%days + 1
	next := day%days + 1

	return []models.InlineKeyboardButton{
		Button("◀️ "+label(prev), prefix+strconv.Itoa(prev)),
		Button(label(next)+" ▶️", prefix+strconv.Itoa(next)),
	}
}

// AddDayPagination добавляет переключатель дней к builder
func (b *Builder) AddDayPagination(prefix string, day, days int, label func(int) string) *Builder {
	return b.Row(DayPagination(prefix, day, days, label)...)
}
