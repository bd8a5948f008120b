package planner

import "strings"

// Band грубый интервал времени суток для фильтра
type Band string

const (
	BandMorning   Band = "morning"
	BandMidday    Band = "midday"
	BandAfternoon Band = "afternoon"
	BandEvening   Band = "evening"
)

// AllBands все интервалы в порядке отображения
var AllBands = []Band{BandMorning, BandMidday, BandAfternoon, BandEvening}

// bandMarkers подстрока, по которой слот относится к интервалу.
// Это не проверка диапазона: "5:00" совпадает и с "3:00–5:00 PM".
var bandMarkers = map[Band]string{
	BandMorning:   "10:00",
	BandMidday:    "12:00",
	BandAfternoon: "3:00",
	BandEvening:   "5:00",
}

var bandLabels = map[Band]string{
	BandMorning:   "10–12",
	BandMidday:    "12–2",
	BandAfternoon: "3–5",
	BandEvening:   "5–7",
}

// ParseBand возвращает интервал по его имени
func ParseBand(s string) (Band, bool) {
	b := Band(strings.ToLower(strings.TrimSpace(s)))
	_, ok := bandMarkers[b]
	return b, ok
}

// Marker возвращает подстроку-маркер интервала
func (b Band) Marker() string {
	return bandMarkers[b]
}

// Label короткая подпись для кнопки
func (b Band) Label() string {
	if l, ok := bandLabels[b]; ok {
		return l
	}
	return string(b)
}

// Matches проверяет попадает ли строка времени в интервал
func (b Band) Matches(timeRange string) bool {
	marker := b.Marker()
	if marker == "" {
		return false
	}
	return strings.Contains(timeRange, marker)
}

// MatchesAnyBand единственная точка сопоставления времени слота с интервалами
func MatchesAnyBand(timeRange string, bands BandSet) bool {
	for _, b := range AllBands {
		if bands.Has(b) && b.Matches(timeRange) {
			return true
		}
	}
	return false
}

// BandSet множество активных интервалов
type BandSet map[Band]struct{}

// NewBandSet создаёт множество из перечисленных интервалов
func NewBandSet(bands ...Band) BandSet {
	set := make(BandSet, len(bands))
	for _, b := range bands {
		set[b] = struct{}{}
	}
	return set
}

// AllBandSet множество со всеми интервалами (состояние по умолчанию)
func AllBandSet() BandSet {
	return NewBandSet(AllBands...)
}

func (s BandSet) Has(b Band) bool {
	_, ok := s[b]
	return ok
}

// Toggle возвращает новое множество с переключённым интервалом
func (s BandSet) Toggle(b Band) BandSet {
	next := make(BandSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[b]; ok {
		delete(next, b)
	} else {
		next[b] = struct{}{}
	}
	return next
}

// List возвращает интервалы в порядке AllBands
func (s BandSet) List() []Band {
	out := make([]Band, 0, len(s))
	for _, b := range AllBands {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}
