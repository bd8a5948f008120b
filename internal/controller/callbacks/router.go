package callbacks

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/plan"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	cb := common.ParseCallback(callback.Data)

	switch cb.Kind {
	// ===== Фильтры =====
	case common.KindDay:
		plan.HandleSelectDay(ctx, b, callback, h, cb.Day)
	case common.KindBand:
		plan.HandleToggleBand(ctx, b, callback, h, cb.Band)
	case common.KindSubject:
		plan.HandleToggleSubject(ctx, b, callback, h, cb.Index)
	case common.KindAllSubjects:
		plan.HandleAllSubjects(ctx, b, callback, h)

	// ===== Корзина =====
	case common.KindSlot:
		plan.HandleToggleSlot(ctx, b, callback, h, cb.SlotID)
	case common.KindOverview:
		plan.HandleOverview(ctx, b, callback, h)
	case common.KindExport:
		plan.HandleExport(ctx, b, callback, h)
	case common.KindConfirm:
		plan.HandleConfirm(ctx, b, callback, h)

	// ===== Навигация =====
	case common.KindScreen:
		common.HandleNavigate(ctx, b, callback, h, cb.Screen)
	case common.KindReset:
		common.HandleReset(ctx, b, callback, h)
	case common.KindNoop:
		common.HandleNoop(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", callback.Data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
	}
}
