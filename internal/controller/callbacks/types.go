package callbacks

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	plannerService *service.PlannerService,
	checkoutService *checkout.Service,
	sessions *state.Manager,
	m *metrics.Metrics,
	center string,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		Planner:  plannerService,
		Checkout: checkoutService,
		Sessions: sessions,
		Metrics:  m,
		Center:   center,
		Logger:   logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
