package model

// Дни недели в нумерации каталога (Пн = 1 ... Вс = 7)
const (
	Monday     = 1
	Sunday     = 7
	DaysInWeek = 7
)

var weekdayShort = []string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekdayName = []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDay проверяет что день недели в диапазоне 1-7
func ValidDay(dow int) bool {
	return dow >= Monday && dow <= Sunday
}

// WeekdayShort возвращает короткое название дня недели
func WeekdayShort(dow int) string {
	if !ValidDay(dow) {
		return "?"
	}
	return weekdayShort[dow]
}

// WeekdayName возвращает полное название дня недели
func WeekdayName(dow int) string {
	if !ValidDay(dow) {
		return "Unknown"
	}
	return weekdayName[dow]
}
