package model

type SlotStatus string

const (
	SlotStatusOpen   SlotStatus = "open"
	SlotStatusClosed SlotStatus = "closed"
)

// SeatsUnknown означает, что количество мест в каталоге не указано
const SeatsUnknown = -1

// Slot одно еженедельное занятие из каталога
type Slot struct {
	ID        string     `json:"id"`
	DayOfWeek int        `json:"dow"`  // 1 = Monday, 7 = Sunday
	TimeRange string     `json:"time"` // "10:00–12:00 PM", не парсится
	Subject   string     `json:"subject"`
	Price     int64      `json:"coins"` // в монетах за месяц
	SeatsLeft int        `json:"seatsLeft"`
	Status    SlotStatus `json:"status"`

	// Поля только для отображения
	DayLabel  string `json:"day,omitempty"`
	DateLabel string `json:"dateLabel,omitempty"`
	Level     string `json:"level,omitempty"`
	Teacher   string `json:"teacher,omitempty"`
	Center    string `json:"center,omitempty"`
}

// Disabled сообщает, что слот нельзя выбрать (закрыт или нет мест)
func (s Slot) Disabled() bool {
	return s.Status == SlotStatusClosed || s.SeatsLeft == 0
}

// IsOpen проверяет что слот доступен для выбора
func (s Slot) IsOpen() bool {
	return !s.Disabled()
}
