package planner

import (
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, ScreenIntro, s.Screen)
	assert.Equal(t, model.Monday, s.Filter.ActiveDay)
	assert.Equal(t, AllBands, s.Filter.Bands.List())
	assert.Empty(t, s.Filter.Subjects)
	assert.True(t, s.Cart.IsEmpty())
}

func TestReduce_SelectDay(t *testing.T) {
	s := Reduce(NewState(), SelectDay{Day: 4})
	assert.Equal(t, 4, s.Filter.ActiveDay)

	s = Reduce(s, SelectDay{Day: 8})
	assert.Equal(t, 4, s.Filter.ActiveDay, "invalid day ignored")
}

func TestReduce_ToggleBand(t *testing.T) {
	start := NewState()
	s := Reduce(start, ToggleBand{Band: BandMorning})

	assert.False(t, s.Filter.Bands.Has(BandMorning))
	assert.True(t, start.Filter.Bands.Has(BandMorning), "previous state untouched")

	s = Reduce(s, ToggleBand{Band: Band("night")})
	assert.Len(t, s.Filter.Bands, 3)
}

func TestReduce_SubjectFilter(t *testing.T) {
	s := Reduce(NewState(), ToggleSubject{Subject: "Math"})
	assert.Equal(t, NewSubjectSet("Math"), s.Filter.Subjects)

	s = Reduce(s, ToggleSubject{Subject: "Art"})
	assert.Equal(t, NewSubjectSet("Math", "Art"), s.Filter.Subjects)

	s = Reduce(s, ShowAllSubjects{})
	assert.Empty(t, s.Filter.Subjects)
}

func TestReduce_ToggleSubjectNormalisesAll(t *testing.T) {
	universe := []string{"Art", "Math"}
	toggle := func(s State, subject string) State {
		return Reduce(s, ToggleSubject{Subject: subject, Universe: universe})
	}

	s := toggle(NewState(), "Math")
	assert.Equal(t, NewSubjectSet("Math"), s.Filter.Subjects)

	// все предметы выбраны по одному: это то же самое что "все"
	s = toggle(s, "Art")
	assert.Empty(t, s.Filter.Subjects)
	assert.True(t, s.Filter.Subjects.IsAll(universe))

	s = toggle(s, "Math")
	assert.Equal(t, NewSubjectSet("Math"), s.Filter.Subjects)

	catalog := []model.Slot{
		slot("m", 1, "10:00–12:00 PM", "Math", 3000),
		slot("a", 1, "3:00–5:00 PM", "Art", 2500),
	}
	snap := Derive(s, catalog, DefaultTiers)
	require.Len(t, snap.Filtered, 1)
	assert.Equal(t, "m", snap.Filtered[0].ID)
	assert.False(t, snap.SubjectsAll())

	// полный список предметов в сессии тоже считается "все"
	legacy := NewState()
	legacy.Filter.Subjects = NewSubjectSet("Math", "Art")
	assert.Equal(t, NewSubjectSet("Art"), toggle(legacy, "Art").Filter.Subjects)
}

func TestReduce_ToggleSlot(t *testing.T) {
	a := slot("a", 1, "10:00–12:00 PM", "Math", 3000)

	s := Reduce(NewState(), ToggleSlot{Slot: a})
	assert.True(t, s.Cart.Contains("a"))

	s = Reduce(s, ToggleSlot{Slot: a})
	assert.True(t, s.Cart.IsEmpty())
}

func TestReduce_ScenarioE_FullSlotLeavesCartUnchanged(t *testing.T) {
	full := slot("full", 1, "10:00–12:00 PM", "Math", 3000)
	full.SeatsLeft = 0

	before := Reduce(NewState(), ToggleSlot{Slot: slot("a", 2, "3:00–5:00 PM", "Art", 1)})
	after := Reduce(before, ToggleSlot{Slot: full})

	assert.True(t, after.Cart.Equal(before.Cart))
}

func TestReduce_NavigateCheckoutRequiresCart(t *testing.T) {
	s := Reduce(NewState(), Navigate{Screen: ScreenCheckout})
	assert.Equal(t, ScreenPlanner, s.Screen)

	s = Reduce(s, ToggleSlot{Slot: slot("a", 1, "10:00–12:00 PM", "Math", 1)})
	s = Reduce(s, Navigate{Screen: ScreenCheckout})
	assert.Equal(t, ScreenCheckout, s.Screen)

	s = Reduce(s, ToggleSlot{Slot: slot("a", 1, "10:00–12:00 PM", "Math", 1)})
	assert.Equal(t, ScreenPlanner, s.Screen, "emptied cart leaves checkout")

	s = Reduce(s, Navigate{Screen: Screen("settings")})
	assert.Equal(t, ScreenPlanner, s.Screen)
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(NewState(), ToggleSlot{Slot: slot("a", 1, "10:00–12:00 PM", "Math", 1)})
	s = Reduce(s, SelectDay{Day: 3})

	s = Reduce(s, Reset{})

	assert.Equal(t, NewState().Screen, s.Screen)
	assert.True(t, s.Cart.IsEmpty())
	assert.Equal(t, model.Monday, s.Filter.ActiveDay)
}

func TestReduce_NilAction(t *testing.T) {
	s := NewState()
	assert.Equal(t, s, Reduce(s, nil))
}

func TestDerive(t *testing.T) {
	catalog := sampleCatalog()
	s := Reduce(NewState(), ToggleBand{Band: BandEvening})
	s = Reduce(s, ToggleSlot{Slot: catalog[1]})
	s = Reduce(s, ToggleSlot{Slot: catalog[3]})

	snap := Derive(s, catalog, DefaultTiers)

	assert.Equal(t, []string{"mon-math", "tue-robo", "tue-math", "wed-art"}, ids(snap.Filtered))
	require.Len(t, snap.Sections, 3)
	assert.Equal(t, int64(5500), snap.Quote.Subtotal)
	assert.Equal(t, int64(1000), snap.Quote.Discount)
	assert.Equal(t, []string{"mon-math", "mon-chess"}, ids(snap.Overview.Day(1)))
	assert.True(t, snap.SubjectsAll())

	active, ok := snap.ActiveSection()
	require.True(t, ok)
	assert.Equal(t, 1, active.Day)
}

func TestDerive_NoSessions(t *testing.T) {
	s := Reduce(NewState(), ToggleSubject{Subject: "Pottery"})

	snap := Derive(s, sampleCatalog(), DefaultTiers)

	assert.Empty(t, snap.Filtered)
	assert.Empty(t, snap.Sections)
	_, ok := snap.ActiveSection()
	assert.False(t, ok)
}
