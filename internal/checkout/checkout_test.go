package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func slot(id string, dow int, timeRange string, price int64) model.Slot {
	return model.Slot{ID: id, DayOfWeek: dow, TimeRange: timeRange, Subject: "Math", Price: price, SeatsLeft: 3, Status: model.SlotStatusOpen}
}

func TestBuildRequest(t *testing.T) {
	cart := planner.NewCart(
		slot("wed", 3, "3:00–5:00 PM", 2500),
		slot("mon", 1, "10:00–12:00 PM", 3000),
	)

	req, err := BuildRequest(42, "HRBR", cart, planner.DefaultTiers)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.Equal(t, int64(42), req.UserID)
	assert.Equal(t, "HRBR", req.Center)
	assert.Equal(t, []string{"mon", "wed"}, slotIDs(req.Items))
	assert.Equal(t, 2, req.Count)
	assert.Equal(t, int64(5500), req.Subtotal)
	assert.Equal(t, int64(1000), req.Discount)
	assert.Equal(t, int64(4500), req.Due)
}

func TestBuildRequest_EmptyCart(t *testing.T) {
	_, err := BuildRequest(1, "HRBR", planner.Cart{}, planner.DefaultTiers)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_Submit(t *testing.T) {
	var got *model.EnrollmentRequest
	svc := NewService(SubmitterFunc(func(_ context.Context, req *model.EnrollmentRequest) error {
		got = req
		return nil
	}), planner.DefaultTiers, "HRBR", zap.NewNop())

	req, err := svc.Submit(context.Background(), 7, planner.NewCart(slot("a", 2, "10:00–12:00 PM", 3000)))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, int64(3000), got.Due)
}

func TestService_SubmitError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(SubmitterFunc(func(context.Context, *model.EnrollmentRequest) error {
		return boom
	}), planner.DefaultTiers, "HRBR", zap.NewNop())

	_, err := svc.Submit(context.Background(), 7, planner.NewCart(slot("a", 2, "10:00–12:00 PM", 3000)))
	assert.ErrorIs(t, err, boom)

	_, err = svc.Submit(context.Background(), 7, planner.Cart{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestLogSubmitter(t *testing.T) {
	req, err := BuildRequest(1, "HRBR", planner.NewCart(slot("a", 1, "10:00–12:00 PM", 1)), planner.DefaultTiers)
	require.NoError(t, err)

	assert.NoError(t, NewLogSubmitter(zap.NewNop()).Submit(context.Background(), req))
}

type historySubmitter struct {
	SubmitterFunc
	reqs []*model.EnrollmentRequest
}

func (h historySubmitter) ListByUser(_ context.Context, userID int64, limit int) ([]*model.EnrollmentRequest, error) {
	var out []*model.EnrollmentRequest
	for _, r := range h.reqs {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestService_History(t *testing.T) {
	store := historySubmitter{reqs: []*model.EnrollmentRequest{
		{ID: uuid.New(), UserID: 7},
		{ID: uuid.New(), UserID: 8},
		{ID: uuid.New(), UserID: 7},
	}}
	svc := NewService(store, planner.DefaultTiers, "HRBR", zap.NewNop())

	reqs, err := svc.History(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)

	reqs, err = svc.History(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestService_HistoryUnavailable(t *testing.T) {
	svc := NewService(NewLogSubmitter(zap.NewNop()), planner.DefaultTiers, "HRBR", zap.NewNop())

	_, err := svc.History(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}
