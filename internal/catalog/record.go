package catalog

import (
	"strings"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"go.uber.org/zap"
)

// record запись каталога в том виде, в каком она лежит в файле.
// Указатели нужны, чтобы отличить отсутствующее поле от нулевого значения.
type record struct {
	ID        string  `json:"id"`
	DayOfWeek int     `json:"dow"`
	Day       string  `json:"day"`
	DateLabel string  `json:"dateLabel"`
	Time      string  `json:"time"`
	Subject   string  `json:"subject"`
	Level     string  `json:"level"`
	Coins     *int64  `json:"coins"`
	SeatsLeft *int    `json:"seatsLeft"`
	Status    *string `json:"status"`
	Teacher   string  `json:"teacher"`
	Center    string  `json:"center"`
}

func (r record) toSlot() model.Slot {
	s := model.Slot{
		ID:        strings.TrimSpace(r.ID),
		DayOfWeek: r.DayOfWeek,
		TimeRange: r.Time,
		Subject:   r.Subject,
		SeatsLeft: model.SeatsUnknown,
		Status:    model.SlotStatusOpen,
		DayLabel:  r.Day,
		DateLabel: r.DateLabel,
		Level:     r.Level,
		Teacher:   r.Teacher,
		Center:    r.Center,
	}
	if r.Coins != nil && *r.Coins > 0 {
		s.Price = *r.Coins
	}
	if r.SeatsLeft != nil {
		s.SeatsLeft = *r.SeatsLeft
		if s.SeatsLeft < 0 {
			s.SeatsLeft = model.SeatsUnknown
		}
	}
	if r.Status != nil && strings.EqualFold(strings.TrimSpace(*r.Status), string(model.SlotStatusClosed)) {
		s.Status = model.SlotStatusClosed
	}
	if s.DayLabel == "" {
		s.DayLabel = model.WeekdayShort(s.DayOfWeek)
	}
	return s
}

// Sanitize отбрасывает записи с пустым id или днём вне 1..7.
// При повторе id остаётся первая запись.
func Sanitize(slots []model.Slot, logger *zap.Logger) []model.Slot {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]model.Slot, 0, len(slots))
	seen := make(map[string]struct{}, len(slots))
	for i, s := range slots {
		if s.ID == "" {
			logger.Warn("Skipping catalog record without id", zap.Int("index", i))
			continue
		}
		if !model.ValidDay(s.DayOfWeek) {
			logger.Warn("Skipping catalog record with invalid day",
				zap.String("slot_id", s.ID),
				zap.Int("dow", s.DayOfWeek),
			)
			continue
		}
		if _, dup := seen[s.ID]; dup {
			logger.Warn("Skipping duplicate catalog record", zap.String("slot_id", s.ID))
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
