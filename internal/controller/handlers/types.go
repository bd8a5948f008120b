package handlers

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	plannerService  *service.PlannerService
	userService     *service.UserService
	checkoutService *checkout.Service
	sessions        *state.Manager
	metrics         *metrics.Metrics
	center          string
	devMode         bool
	reload          func(ctx context.Context) error
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд.
// reload перезагружает каталог по /reload, доступно только в devMode вместе с /addbatch.
func NewHandlers(
	plannerService *service.PlannerService,
	userService *service.UserService,
	checkoutService *checkout.Service,
	sessions *state.Manager,
	m *metrics.Metrics,
	center string,
	devMode bool,
	reload func(ctx context.Context) error,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		plannerService:  plannerService,
		userService:     userService,
		checkoutService: checkoutService,
		sessions:        sessions,
		metrics:         m,
		center:          center,
		devMode:         devMode,
		reload:          reload,
		logger:          logger,
	}
}
