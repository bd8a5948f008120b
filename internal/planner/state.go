package planner

import (
	"github.com/Freeeeeet/afterschool_planner/internal/model"
)

// Screen экран сценария записи
type Screen string

const (
	ScreenIntro    Screen = "intro"
	ScreenPlanner  Screen = "planner"
	ScreenCheckout Screen = "checkout"
)

// ParseScreen возвращает экран по имени
func ParseScreen(s string) (Screen, bool) {
	switch Screen(s) {
	case ScreenIntro, ScreenPlanner, ScreenCheckout:
		return Screen(s), true
	}
	return "", false
}

// State состояние одной сессии планировщика.
// Меняется только через Reduce.
type State struct {
	Screen Screen
	Filter Filter
	Cart   Cart
}

// NewState начальное состояние: вводный экран, фильтры по умолчанию, пустая корзина
func NewState() State {
	return State{
		Screen: ScreenIntro,
		Filter: DefaultFilter(),
	}
}

// Action действие пользователя над состоянием
type Action interface {
	Name() string
	reduce(s State) State
}

// Reduce применяет действие и возвращает новое состояние
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// SelectDay переход к секции дня
type SelectDay struct{ Day int }

func (SelectDay) Name() string { return "select_day" }

func (a SelectDay) reduce(s State) State {
	if !model.ValidDay(a.Day) {
		return s
	}
	s.Filter.ActiveDay = a.Day
	return s
}

// ToggleBand включает или выключает интервал времени
type ToggleBand struct{ Band Band }

func (ToggleBand) Name() string { return "toggle_band" }

func (a ToggleBand) reduce(s State) State {
	if _, ok := ParseBand(string(a.Band)); !ok {
		return s
	}
	s.Filter.Bands = s.Filter.Bands.Toggle(a.Band)
	return s
}

// ToggleSubject включает или выключает предмет.
// Из состояния "все предметы" выбор предмета оставляет только его.
// Universe - все предметы каталога; "все" хранится пустым множеством.
type ToggleSubject struct {
	Subject  string
	Universe []string
}

func (ToggleSubject) Name() string { return "toggle_subject" }

func (a ToggleSubject) reduce(s State) State {
	if a.Subject == "" {
		return s
	}
	current := s.Filter.Subjects
	if current.IsAll(a.Universe) {
		current = SubjectSet{}
	}
	next := current.Toggle(a.Subject)
	if next.IsAll(a.Universe) {
		next = SubjectSet{}
	}
	s.Filter.Subjects = next
	return s
}

// ShowAllSubjects сбрасывает фильтр по предметам
type ShowAllSubjects struct{}

func (ShowAllSubjects) Name() string { return "show_all_subjects" }

func (ShowAllSubjects) reduce(s State) State {
	s.Filter.Subjects = SubjectSet{}
	return s
}

// ToggleSlot добавляет или убирает слот из корзины
type ToggleSlot struct{ Slot model.Slot }

func (ToggleSlot) Name() string { return "toggle_slot" }

func (a ToggleSlot) reduce(s State) State {
	s.Cart = Toggle(s.Cart, a.Slot)
	if s.Cart.IsEmpty() && s.Screen == ScreenCheckout {
		s.Screen = ScreenPlanner
	}
	return s
}

// Navigate переход между экранами. На оформление нельзя перейти с пустой корзиной.
type Navigate struct{ Screen Screen }

func (Navigate) Name() string { return "navigate" }

func (a Navigate) reduce(s State) State {
	screen, ok := ParseScreen(string(a.Screen))
	if !ok {
		return s
	}
	if screen == ScreenCheckout && s.Cart.IsEmpty() {
		screen = ScreenPlanner
	}
	s.Screen = screen
	return s
}

// Reset начинает новую сессию
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) reduce(State) State {
	return NewState()
}

// Snapshot производные данные для отображения, пересчитываются целиком
type Snapshot struct {
	Screen   Screen
	Filter   Filter
	Subjects []string
	Filtered []model.Slot
	Sections []DaySection
	Cart     Cart
	Quote    Quote
	Overview Overview
}

// ActiveSection секция выбранного дня, если в нём есть слоты
func (sn Snapshot) ActiveSection() (DaySection, bool) {
	return FindSection(sn.Sections, sn.Filter.ActiveDay)
}

// SubjectsAll сообщает что фильтр по предметам не ограничивает выборку
func (sn Snapshot) SubjectsAll() bool {
	return sn.Filter.Subjects.IsAll(sn.Subjects)
}

// Derive пересчитывает всё производное состояние от каталога
func Derive(s State, catalog []model.Slot, tiers TierTable) Snapshot {
	filtered := s.Filter.Apply(catalog)
	return Snapshot{
		Screen:   s.Screen,
		Filter:   s.Filter,
		Subjects: Subjects(catalog),
		Filtered: filtered,
		Sections: GroupByDay(filtered),
		Cart:     s.Cart,
		Quote:    tiers.Price(s.Cart),
		Overview: WeekOverview(s.Cart),
	}
}
