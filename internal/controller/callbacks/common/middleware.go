package common

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession создаёт HandlerContext и загружает сессию пользователя.
// Без сообщения экран не перерисовать, поэтому отвечаем ошибкой сразу.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if hc.Message == nil {
		h.Logger.Warn("Callback without message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	hc.LoadSession()
	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// RenderAndAnswer перерисовывает экран и отвечает на callback
func RenderAndAnswer(hc *HandlerContext, snap planner.Snapshot, answer string) {
	if err := hc.Render(snap); err != nil {
		HandleError(hc, err, "render")
		return
	}
	hc.Answer(answer)
}
