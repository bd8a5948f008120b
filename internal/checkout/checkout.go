package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrHistoryUnavailable = errors.New("enrollment history is not stored")
)

// Submitter принимает готовую заявку (БД, лог и т.п.)
type Submitter interface {
	Submit(ctx context.Context, req *model.EnrollmentRequest) error
}

// HistoryLister отдаёт прошлые заявки пользователя, реализуется хранилищем заявок
type HistoryLister interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]*model.EnrollmentRequest, error)
}

// SubmitterFunc позволяет использовать функцию как Submitter
type SubmitterFunc func(ctx context.Context, req *model.EnrollmentRequest) error

func (f SubmitterFunc) Submit(ctx context.Context, req *model.EnrollmentRequest) error {
	return f(ctx, req)
}

// BuildRequest собирает заявку из корзины. Слоты идут в порядке отображения.
func BuildRequest(userID int64, center string, cart planner.Cart, tiers planner.TierTable) (*model.EnrollmentRequest, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	quote := tiers.Price(cart)
	return &model.EnrollmentRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Center:    center,
		Items:     cart.Sorted(),
		Count:     quote.Count,
		Subtotal:  quote.Subtotal,
		Discount:  quote.Discount,
		Due:       quote.Due,
		CreatedAt: time.Now(),
	}, nil
}

// Service оформляет заявки
type Service struct {
	submitter Submitter
	tiers     planner.TierTable
	center    string
	logger    *zap.Logger
}

func NewService(submitter Submitter, tiers planner.TierTable, center string, logger *zap.Logger) *Service {
	return &Service{
		submitter: submitter,
		tiers:     tiers,
		center:    center,
		logger:    logger,
	}
}

// Submit собирает заявку и передаёт её дальше
func (s *Service) Submit(ctx context.Context, userID int64, cart planner.Cart) (*model.EnrollmentRequest, error) {
	req, err := BuildRequest(userID, s.center, cart, s.tiers)
	if err != nil {
		return nil, err
	}

	if err := s.submitter.Submit(ctx, req); err != nil {
		s.logger.Error("Failed to submit enrollment request",
			zap.Int64("user_id", userID),
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("submit enrollment request: %w", err)
	}

	s.logger.Info("Enrollment request submitted",
		zap.Int64("user_id", userID),
		zap.String("request_id", req.ID.String()),
		zap.Int("slots", req.Count),
		zap.Int64("due", req.Due),
	)
	return req, nil
}

// History последние заявки пользователя. Работает, только если Submitter их хранит.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*model.EnrollmentRequest, error) {
	lister, ok := s.submitter.(HistoryLister)
	if !ok {
		return nil, ErrHistoryUnavailable
	}

	reqs, err := lister.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list enrollment history: %w", err)
	}
	return reqs, nil
}

// LogSubmitter только пишет заявку в лог, используется без БД
type LogSubmitter struct {
	logger *zap.Logger
}

func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

func (s *LogSubmitter) Submit(_ context.Context, req *model.EnrollmentRequest) error {
	s.logger.Info("Enrollment request (not persisted)",
		zap.String("request_id", req.ID.String()),
		zap.Int64("user_id", req.UserID),
		zap.Strings("slot_ids", slotIDs(req.Items)),
		zap.Int64("due", req.Due),
	)
	return nil
}

func slotIDs(items []model.Slot) []string {
	ids := make([]string, 0, len(items))
	for _, s := range items {
		ids = append(ids, s.ID)
	}
	return ids
}
