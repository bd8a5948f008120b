package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleCart() planner.Cart {
	return planner.NewCart(
		model.Slot{ID: "mon-math", DayOfWeek: 1, TimeRange: "10:00–12:00 PM", Subject: "Math", Price: 3000, SeatsLeft: 5},
		model.Slot{ID: "mon-art", DayOfWeek: 1, TimeRange: "10:00–12:00 PM", Subject: "Art & Design", Price: 3000, SeatsLeft: 5},
		model.Slot{ID: "wed-chess", DayOfWeek: 3, TimeRange: "5:00–7:00 PM", Subject: "Chess", Price: 2500, SeatsLeft: 5},
		model.Slot{ID: "sat-odd", DayOfWeek: 6, TimeRange: "8:00–9:00 AM", Subject: "Yoga", Price: 1000, SeatsLeft: 5},
	)
}

func TestGenerateWeekImage(t *testing.T) {
	cart := sampleCart()

	data, err := GenerateWeekImage(planner.WeekOverview(cart), WeekImageOptions{
		ActiveDay: 3,
		Quote:     planner.Price(cart),
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), headerHeight)
}

func TestGenerateWeekImage_Empty(t *testing.T) {
	data, err := GenerateWeekImage(planner.Overview{}, WeekImageOptions{Quote: planner.Price(planner.Cart{})})
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRowIndex(t *testing.T) {
	rows := gridRows()

	assert.Equal(t, 0, rowIndex(rows, "10:00–12:00 PM"))
	assert.Equal(t, 2, rowIndex(rows, "3:00–5:00 PM"), "first matching band wins")
	assert.Equal(t, 3, rowIndex(rows, "5:00–7:00 PM"))
	assert.Equal(t, len(rows)-1, rowIndex(rows, "8:00–9:00 AM"))
}

func TestSubjectColorStable(t *testing.T) {
	assert.Equal(t, subjectColor("Math"), subjectColor("Math"))
}

func TestExportPlanXLSX(t *testing.T) {
	cart := sampleCart()
	quote := planner.Price(cart)

	data, err := ExportPlanXLSX(cart.Sorted(), quote)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Plan")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "dow", "day", "time", "subject", "level", "teacher", "center", "seatsLeft", "status", "coins"}, rows[0])
	assert.Equal(t, "mon-art", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "Mon", rows[1][2])
	assert.Equal(t, "sat-odd", rows[4][0])

	last := rows[len(rows)-1]
	assert.Equal(t, "Due / month", last[9])
	assert.Equal(t, "4500", last[10])
}

func TestExportPlanXLSX_ReadsBackAsCatalog(t *testing.T) {
	cart := planner.NewCart(
		model.Slot{ID: "mon-math", DayOfWeek: 1, TimeRange: "10:00–12:00 PM", Subject: "Math", Price: 3000, SeatsLeft: 4, Status: model.SlotStatusOpen},
		model.Slot{ID: "tue-chess", DayOfWeek: 2, TimeRange: "3:00–5:00 PM", Subject: "Chess", Price: 2500, SeatsLeft: model.SeatsUnknown, Status: model.SlotStatusOpen},
	)

	data, err := ExportPlanXLSX(cart.Sorted(), planner.Price(cart))
	require.NoError(t, err)

	decoded, err := catalog.DecodeXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	slots := catalog.Sanitize(decoded, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, "mon-math", slots[0].ID)
	assert.Equal(t, model.Monday, slots[0].DayOfWeek)
	assert.Equal(t, int64(3000), slots[0].Price)
	assert.Equal(t, 4, slots[0].SeatsLeft)
	assert.Equal(t, 2, slots[1].DayOfWeek)
	assert.Equal(t, model.SeatsUnknown, slots[1].SeatsLeft)
	assert.Equal(t, model.SlotStatusOpen, slots[1].Status)
}

func TestPlanFileName(t *testing.T) {
	ts := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "weekly_plan_20260302_150405.xlsx", PlanFileName(ts))
}
