package planner

import (
	"sort"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
)

// Cart набор выбранных слотов, уникальных по ID.
// Значение неизменяемое: все операции возвращают новую корзину.
type Cart struct {
	items []model.Slot
}

// NewCart собирает корзину через Toggle, поэтому закрытые слоты и дубликаты отбрасываются
func NewCart(slots ...model.Slot) Cart {
	var c Cart
	for _, s := range slots {
		if !c.Contains(s.ID) {
			c = Toggle(c, s)
		}
	}
	return c
}

// Toggle удаляет слот из корзины если он там есть, иначе добавляет.
// Попытка добавить недоступный слот игнорируется.
func Toggle(c Cart, slot model.Slot) Cart {
	for i, item := range c.items {
		if item.ID == slot.ID {
			next := make([]model.Slot, 0, len(c.items)-1)
			next = append(next, c.items[:i]...)
			next = append(next, c.items[i+1:]...)
			return Cart{items: next}
		}
	}

	if slot.Disabled() {
		return c
	}

	next := make([]model.Slot, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, slot)
	return Cart{items: next}
}

// Count количество выбранных слотов
func (c Cart) Count() int {
	return len(c.items)
}

// IsEmpty сообщает что ничего не выбрано
func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal сумма цен выбранных слотов
func (c Cart) Subtotal() int64 {
	var sum int64
	for _, item := range c.items {
		sum += item.Price
	}
	return sum
}

func (c Cart) Contains(id string) bool {
	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items копия выбранных слотов в порядке добавления
func (c Cart) Items() []model.Slot {
	out := make([]model.Slot, len(c.items))
	copy(out, c.items)
	return out
}

// IDs идентификаторы выбранных слотов в порядке добавления
func (c Cart) IDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Equal сравнивает корзины как множества идентификаторов
func (c Cart) Equal(other Cart) bool {
	if len(c.items) != len(other.items) {
		return false
	}
	for _, item := range c.items {
		if !other.Contains(item.ID) {
			return false
		}
	}
	return true
}

// Sorted порядок отображения: день недели, затем время, затем предмет
func (c Cart) Sorted() []model.Slot {
	out := c.Items()
	SortForDisplay(out)
	return out
}

// SortForDisplay сортирует слоты по дню, времени и предмету
func SortForDisplay(slots []model.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.TimeRange != b.TimeRange {
			return a.TimeRange < b.TimeRange
		}
		return a.Subject < b.Subject
	})
}

// Reconcile обновляет выбранные слоты по свежему каталогу.
// Слоты, исчезнувшие из каталога или ставшие недоступными, удаляются.
func (c Cart) Reconcile(catalog []model.Slot) Cart {
	if len(c.items) == 0 {
		return c
	}

	byID := make(map[string]model.Slot, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}

	next := make([]model.Slot, 0, len(c.items))
	for _, item := range c.items {
		fresh, ok := byID[item.ID]
		if !ok || fresh.Disabled() {
			continue
		}
		next = append(next, fresh)
	}
	return Cart{items: next}
}
