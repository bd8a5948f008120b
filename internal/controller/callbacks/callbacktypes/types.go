package callbacktypes

import (
	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Planner  *service.PlannerService
	Checkout *checkout.Service
	Sessions *state.Manager
	Metrics  *metrics.Metrics
	Center   string
	Logger   *zap.Logger
}
