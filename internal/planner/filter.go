package planner

import (
	"sort"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
)

// SubjectSet множество выбранных предметов. Пустое множество означает "все".
type SubjectSet map[string]struct{}

// NewSubjectSet создаёт множество из перечисленных предметов
func NewSubjectSet(subjects ...string) SubjectSet {
	set := make(SubjectSet, len(subjects))
	for _, s := range subjects {
		set[s] = struct{}{}
	}
	return set
}

func (s SubjectSet) Has(subject string) bool {
	_, ok := s[subject]
	return ok
}

// IsAll сообщает, что фильтр по предмету не ограничивает выборку.
// universe - все предметы каталога; nil допускается.
func (s SubjectSet) IsAll(universe []string) bool {
	if len(s) == 0 {
		return true
	}
	if len(universe) == 0 {
		return false
	}
	for _, subj := range universe {
		if !s.Has(subj) {
			return false
		}
	}
	return true
}

// Allows проверяет проходит ли предмет фильтр
func (s SubjectSet) Allows(subject string) bool {
	return len(s) == 0 || s.Has(subject)
}

// Toggle возвращает новое множество с переключённым предметом
func (s SubjectSet) Toggle(subject string) SubjectSet {
	next := make(SubjectSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[subject]; ok {
		delete(next, subject)
	} else {
		next[subject] = struct{}{}
	}
	return next
}

// Filter состояние фильтров планировщика
type Filter struct {
	ActiveDay int // только для навигации, слоты не скрывает
	Bands     BandSet
	Subjects  SubjectSet
}

// DefaultFilter фильтр по умолчанию: понедельник, все интервалы, все предметы
func DefaultFilter() Filter {
	return Filter{
		ActiveDay: model.Monday,
		Bands:     AllBandSet(),
		Subjects:  SubjectSet{},
	}
}

// FilterSlots оставляет слоты, подходящие под интервалы и предметы,
// и сортирует их по дню недели с сохранением порядка каталога.
func FilterSlots(catalog []model.Slot, bands BandSet, subjects SubjectSet) []model.Slot {
	out := make([]model.Slot, 0, len(catalog))
	for _, slot := range catalog {
		if !MatchesAnyBand(slot.TimeRange, bands) {
			continue
		}
		if !subjects.Allows(slot.Subject) {
			continue
		}
		out = append(out, slot)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DayOfWeek < out[j].DayOfWeek
	})

	return out
}

// Apply применяет фильтр к каталогу
func (f Filter) Apply(catalog []model.Slot) []model.Slot {
	return FilterSlots(catalog, f.Bands, f.Subjects)
}

// Subjects возвращает уникальные предметы каталога в порядке первого появления
func Subjects(catalog []model.Slot) []string {
	seen := make(map[string]struct{}, len(catalog))
	var out []string
	for _, slot := range catalog {
		if _, ok := seen[slot.Subject]; ok {
			continue
		}
		seen[slot.Subject] = struct{}{}
		out = append(out, slot.Subject)
	}
	return out
}
