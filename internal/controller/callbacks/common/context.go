package common

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext содержит общие данные для обработки callback
// Это избавляет от дублирования кода получения сессии, сообщения и т.д.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    state.Session
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession загружает сессию и сверяет корзину с текущим каталогом
func (hc *HandlerContext) LoadSession() {
	hc.update(func(s state.Session) state.Session { return s })
}

// Apply применяет действие к планировщику и возвращает новое представление
func (hc *HandlerContext) Apply(action planner.Action) planner.Snapshot {
	hc.update(func(s state.Session) state.Session {
		s.Planner = hc.Handler.Planner.Apply(hc.TelegramID, s.Planner, action)
		return s
	})
	return hc.Snapshot()
}

// Snapshot представление текущего состояния сессии
func (hc *HandlerContext) Snapshot() planner.Snapshot {
	return hc.Handler.Planner.View(hc.Session.Planner)
}

// ClearSession удаляет сессию пользователя
func (hc *HandlerContext) ClearSession() {
	hc.Handler.Sessions.Clear(hc.TelegramID)
	hc.Session = state.NewSession()
	hc.trackSessions()
}

func (hc *HandlerContext) update(fn func(state.Session) state.Session) {
	hc.Session = hc.Handler.Sessions.Update(hc.TelegramID, func(s state.Session) state.Session {
		s.Planner, s.CatalogVersion = hc.Handler.Planner.Reconcile(s.Planner, s.CatalogVersion)
		s = fn(s)
		if hc.Message != nil {
			s.MessageID = hc.Message.ID
		}
		return s
	})
	hc.trackSessions()
}

func (hc *HandlerContext) trackSessions() {
	if hc.Handler.Metrics != nil {
		hc.Handler.Metrics.ActiveSessions.Set(float64(hc.Handler.Sessions.Count()))
	}
}

// Render показывает экран, соответствующий состоянию
func (hc *HandlerContext) Render(snap planner.Snapshot) error {
	text, kb := BuildScreen(snap, hc.Handler.Planner.Tiers(), hc.Handler.Center)
	return hc.EditMessage(text, kb)
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// Resend удаляет текущее сообщение и отправляет экран заново внизу чата
func (hc *HandlerContext) Resend(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message != nil {
		if _, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
			ChatID:    hc.ChatID,
			MessageID: hc.Message.ID,
		}); err != nil {
			hc.Handler.Logger.Warn("Failed to delete message", zap.Error(err))
		}
	}

	msg, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return err
	}

	hc.Message = msg
	hc.Handler.Sessions.Update(hc.TelegramID, func(s state.Session) state.Session {
		s.MessageID = msg.ID
		return s
	})
	return nil
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	_, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

// SendPhoto отправляет картинку
func (hc *HandlerContext) SendPhoto(filename string, data []byte, caption string) error {
	_, err := hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID:    hc.ChatID,
		Photo:     &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})

	return err
}

// SendDocument отправляет файл
func (hc *HandlerContext) SendDocument(filename string, data []byte, caption string) error {
	_, err := hc.Bot.SendDocument(hc.Ctx, &bot.SendDocumentParams{
		ChatID:    hc.ChatID,
		Document:  &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})

	return err
}
