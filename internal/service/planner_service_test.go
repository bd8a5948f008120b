package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSlot(id string, dow int, timeRange, subject string, price int64) model.Slot {
	return model.Slot{ID: id, DayOfWeek: dow, TimeRange: timeRange, Subject: subject, Price: price, SeatsLeft: 4, Status: model.SlotStatusOpen}
}

func newTestService(t *testing.T, writer SlotWriter, slots ...model.Slot) (*PlannerService, *catalog.Store, *metrics.Metrics) {
	t.Helper()
	store := catalog.NewStore(nil, zap.NewNop())
	store.Replace(slots)
	m := metrics.New()
	return NewPlannerService(store, writer, planner.DefaultTiers, m, zap.NewNop()), store, m
}

type writerFunc func(ctx context.Context, slot model.Slot) error

func (f writerFunc) Create(ctx context.Context, slot model.Slot) error { return f(ctx, slot) }

func TestPlannerService_ApplyCountsActions(t *testing.T) {
	svc, _, m := newTestService(t, nil, testSlot("a", 1, "10:00–12:00 PM", "Math", 3000))
	slot, ok := svc.FindSlot("a")
	require.True(t, ok)

	st := svc.Apply(1, planner.NewState(), planner.ToggleSlot{Slot: slot})
	st = svc.Apply(1, st, planner.Navigate{Screen: planner.ScreenCheckout})

	assert.Equal(t, planner.ScreenCheckout, st.Screen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("toggle_slot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("navigate")))
}

func TestPlannerService_Reconcile(t *testing.T) {
	a := testSlot("a", 1, "10:00–12:00 PM", "Math", 3000)
	b := testSlot("b", 2, "3:00–5:00 PM", "Art", 2500)
	svc, store, _ := newTestService(t, nil, a, b)

	st := planner.Reduce(planner.NewState(), planner.ToggleSlot{Slot: a})
	st = planner.Reduce(st, planner.Navigate{Screen: planner.ScreenCheckout})
	st, seen := svc.Reconcile(st, 0)
	assert.Equal(t, 1, st.Cart.Count())

	// слот "a" закрылся
	closed := a
	closed.Status = model.SlotStatusClosed
	store.Replace([]model.Slot{closed, b})

	st, seen2 := svc.Reconcile(st, seen)
	assert.NotEqual(t, seen, seen2)
	assert.True(t, st.Cart.IsEmpty())
	assert.Equal(t, planner.ScreenPlanner, st.Screen)
}

func TestPlannerService_SubjectAt(t *testing.T) {
	svc, _, _ := newTestService(t, nil,
		testSlot("a", 1, "10:00–12:00 PM", "Math", 1),
		testSlot("b", 2, "10:00–12:00 PM", "Chess", 1),
	)

	s, ok := svc.SubjectAt(1)
	assert.True(t, ok)
	assert.Equal(t, "Chess", s)

	_, ok = svc.SubjectAt(2)
	assert.False(t, ok)
}

func TestPlannerService_QuoteIDs(t *testing.T) {
	full := testSlot("full", 3, "5:00–7:00 PM", "Chess", 2500)
	full.SeatsLeft = 0
	svc, _, _ := newTestService(t, nil,
		testSlot("a", 1, "10:00–12:00 PM", "Math", 3000),
		testSlot("b", 2, "3:00–5:00 PM", "Art", 2500),
		full,
	)

	q, cart, missing := svc.QuoteIDs([]string{"a", "b", "a", "full", "nope"})

	assert.Equal(t, []string{"nope"}, missing)
	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, int64(4500), q.Due)
}

func TestPlannerService_AddDemoBatch(t *testing.T) {
	var (
		persisted []string
		svc       *PlannerService
		store     *catalog.Store
		m         *metrics.Metrics
	)
	svc, store, m = newTestService(t, writerFunc(func(_ context.Context, s model.Slot) error {
		// слот уже в каталоге, когда его пишут в базу
		_, inStore := store.Find(s.ID)
		assert.True(t, inStore)
		persisted = append(persisted, s.ID)
		return nil
	}))

	slot, err := svc.AddDemoBatch(context.Background(), "HRBR")
	require.NoError(t, err)

	assert.Equal(t, []string{slot.ID}, persisted)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogSlots))
	assert.Equal(t, []string{"Art & Design"}, svc.Subjects())
}

func TestPlannerService_AddDemoBatchWriterError(t *testing.T) {
	svc, store, _ := newTestService(t, writerFunc(func(context.Context, model.Slot) error {
		return errors.New("db down")
	}))

	_, err := svc.AddDemoBatch(context.Background(), "HRBR")
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, svc.Subjects())
}
