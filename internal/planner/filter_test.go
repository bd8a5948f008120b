package planner

import (
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(id string, dow int, timeRange, subject string, price int64) model.Slot {
	return model.Slot{
		ID:        id,
		DayOfWeek: dow,
		TimeRange: timeRange,
		Subject:   subject,
		Price:     price,
		SeatsLeft: 5,
		Status:    model.SlotStatusOpen,
	}
}

func ids(slots []model.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.ID
	}
	return out
}

func sampleCatalog() []model.Slot {
	return []model.Slot{
		slot("wed-art", 3, "3:00–5:00 PM", "Art & Design", 3000),
		slot("mon-math", 1, "10:00–12:00 PM", "Math", 3000),
		slot("tue-robo", 2, "12:00–2:00 PM", "Robotics", 3500),
		slot("mon-chess", 1, "5:00–7:00 PM", "Chess", 2500),
		slot("tue-math", 2, "10:00–12:00 PM", "Math", 3000),
	}
}

func TestBand_Matches(t *testing.T) {
	assert.True(t, BandMorning.Matches("10:00–12:00 PM"))
	assert.True(t, BandMidday.Matches("10:00–12:00 PM"))
	assert.True(t, BandAfternoon.Matches("3:00–5:00 PM"))
	assert.True(t, BandEvening.Matches("5:00–7:00 PM"))
	assert.False(t, BandMorning.Matches("3:00–5:00 PM"))
	assert.False(t, Band("night").Matches("10:00–12:00 PM"))
}

func TestBand_EveningMarkerAlsoMatchesAfternoonEnd(t *testing.T) {
	// Известное ограничение сопоставления по подстроке
	assert.True(t, BandEvening.Matches("3:00–5:00 PM"))
}

func TestParseBand(t *testing.T) {
	b, ok := ParseBand(" Evening ")
	require.True(t, ok)
	assert.Equal(t, BandEvening, b)

	_, ok = ParseBand("night")
	assert.False(t, ok)
}

func TestBandSet_Toggle(t *testing.T) {
	all := AllBandSet()
	without := all.Toggle(BandMidday)

	assert.True(t, all.Has(BandMidday), "original set must not change")
	assert.False(t, without.Has(BandMidday))
	assert.Equal(t, []Band{BandMorning, BandAfternoon, BandEvening}, without.List())
	assert.True(t, without.Toggle(BandMidday).Has(BandMidday))
}

func TestFilterSlots_MorningOnly(t *testing.T) {
	catalog := []model.Slot{
		slot("a", 2, "10:00–12:00 PM", "Math", 3000),
		slot("b", 2, "3:00–5:00 PM", "Art", 3000),
	}

	got := FilterSlots(catalog, NewBandSet(BandMorning), SubjectSet{})

	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilterSlots_SortsByDayStable(t *testing.T) {
	got := FilterSlots(sampleCatalog(), AllBandSet(), SubjectSet{})

	assert.Equal(t, []string{"mon-math", "mon-chess", "tue-robo", "tue-math", "wed-art"}, ids(got))
}

func TestFilterSlots_SubjectFilter(t *testing.T) {
	got := FilterSlots(sampleCatalog(), AllBandSet(), NewSubjectSet("Math"))
	assert.Equal(t, []string{"mon-math", "tue-math"}, ids(got))

	got = FilterSlots(sampleCatalog(), AllBandSet(), NewSubjectSet("Math", "Chess"))
	assert.Equal(t, []string{"mon-math", "mon-chess", "tue-math"}, ids(got))
}

func TestFilterSlots_FullUniverseEqualsAll(t *testing.T) {
	catalog := sampleCatalog()
	universe := NewSubjectSet(Subjects(catalog)...)

	assert.True(t, universe.IsAll(Subjects(catalog)))
	assert.Equal(t,
		ids(FilterSlots(catalog, AllBandSet(), SubjectSet{})),
		ids(FilterSlots(catalog, AllBandSet(), universe)))
}

func TestFilterSlots_EmptyBandsMatchNothing(t *testing.T) {
	got := FilterSlots(sampleCatalog(), NewBandSet(), SubjectSet{})
	assert.Empty(t, got)
}

func TestFilterSlots_Idempotent(t *testing.T) {
	catalog := sampleCatalog()
	bands := NewBandSet(BandMorning, BandEvening)
	subjects := NewSubjectSet("Math", "Chess")

	first := FilterSlots(catalog, bands, subjects)
	second := FilterSlots(catalog, bands, subjects)

	assert.Equal(t, first, second)
	assert.Equal(t, "wed-art", catalog[0].ID, "catalog must not be reordered")
}

func TestSubjects_FirstOccurrenceOrder(t *testing.T) {
	assert.Equal(t, []string{"Art & Design", "Math", "Robotics", "Chess"}, Subjects(sampleCatalog()))
	assert.Nil(t, Subjects(nil))
}
