package handlers

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendScreen применяет действие к сессии и отправляет экран новым сообщением.
// Дальше callback'и редактируют именно это сообщение.
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, update *models.Update, action planner.Action) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	sess := h.sessions.Update(telegramID, func(s state.Session) state.Session {
		s.Planner, s.CatalogVersion = h.plannerService.Reconcile(s.Planner, s.CatalogVersion)
		s.Planner = h.plannerService.Apply(telegramID, s.Planner, action)
		return s
	})
	if h.metrics != nil {
		h.metrics.ActiveSessions.Set(float64(h.sessions.Count()))
	}

	snap := h.plannerService.View(sess.Planner)
	text, kb := common.BuildScreen(snap, h.plannerService.Tiers(), h.center)

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.String("screen", string(snap.Screen)),
			zap.Error(err),
		)
		return
	}

	h.sessions.Update(telegramID, func(s state.Session) state.Session {
		s.MessageID = msg.ID
		return s
	})
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// requireDevMode отсекает служебные команды в production
func (h *Handlers) requireDevMode(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if h.devMode {
		return true
	}
	h.sendError(ctx, b, update.Message.Chat.ID, "❌ This command is only available in development mode.")
	return false
}
