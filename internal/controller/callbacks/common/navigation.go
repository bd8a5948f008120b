package common

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNavigate переключает экран
func HandleNavigate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, screen planner.Screen) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		snap := hc.Apply(planner.Navigate{Screen: screen})
		if err := hc.Render(snap); err != nil {
			HandleError(hc, err, "navigate")
			return
		}
		if snap.Screen != screen {
			hc.AnswerAlert(ErrorMessage(ErrEmptyPlan))
			return
		}
		hc.Answer("")
	})
}

// HandleReset сбрасывает сессию и показывает приветствие
func HandleReset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		snap := hc.Apply(planner.Reset{})

		h.Logger.Info("Session reset", zap.Int64("telegram_id", hc.TelegramID))
		RenderAndAnswer(hc, snap, "🔄 Started over")
	})
}

// HandleNoop просто подтверждает callback
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	AnswerCallback(ctx, b, callback.ID, "")
}
