package planner

import (
	"sort"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
)

// TimeGroup слоты одного дня с одинаковой строкой времени
type TimeGroup struct {
	TimeRange string       `json:"time"`
	Slots     []model.Slot `json:"slots"`
}

// DaySection секция дня в списке слотов
type DaySection struct {
	Day    int         `json:"dow"`
	Label  string      `json:"label"`
	Groups []TimeGroup `json:"groups"`
}

// Count количество слотов в секции
func (d DaySection) Count() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Slots)
	}
	return n
}

// GroupByDay группирует отфильтрованные слоты по дню, затем по времени.
// Дни без слотов не попадают в результат.
func GroupByDay(filtered []model.Slot) []DaySection {
	var sections []DaySection

	for day := model.Monday; day <= model.Sunday; day++ {
		byTime := make(map[string][]model.Slot)
		var times []string
		for _, slot := range filtered {
			if slot.DayOfWeek != day {
				continue
			}
			if _, ok := byTime[slot.TimeRange]; !ok {
				times = append(times, slot.TimeRange)
			}
			byTime[slot.TimeRange] = append(byTime[slot.TimeRange], slot)
		}

		if len(times) == 0 {
			continue
		}

		sort.Strings(times)
		section := DaySection{Day: day, Label: model.WeekdayShort(day)}
		for _, t := range times {
			section.Groups = append(section.Groups, TimeGroup{TimeRange: t, Slots: byTime[t]})
		}
		sections = append(sections, section)
	}

	return sections
}

// FindSection возвращает секцию дня, если она есть
func FindSection(sections []DaySection, day int) (DaySection, bool) {
	for _, s := range sections {
		if s.Day == day {
			return s, true
		}
	}
	return DaySection{}, false
}

// Overview выбранные слоты по дням недели; индекс 0 = понедельник
type Overview [model.DaysInWeek][]model.Slot

// WeekOverview раскладывает корзину по дням недели в порядке добавления
func WeekOverview(c Cart) Overview {
	var o Overview
	for _, slot := range c.items {
		if !model.ValidDay(slot.DayOfWeek) {
			continue
		}
		o[slot.DayOfWeek-1] = append(o[slot.DayOfWeek-1], slot)
	}
	return o
}

// Day слоты для дня 1-7
func (o Overview) Day(dow int) []model.Slot {
	if !model.ValidDay(dow) {
		return nil
	}
	return o[dow-1]
}
