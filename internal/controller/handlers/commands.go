package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/formatting"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const historyLimit = 5

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	if _, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName, from.LastName, from.LanguageCode); err != nil {
		// Планировщик работает и без сохранённых контактов
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", from.ID), zap.Error(err))
	}

	h.sendScreen(ctx, b, update, planner.Navigate{Screen: planner.ScreenIntro})
}

// HandlePlan обрабатывает команду /plan
func (h *Handlers) HandlePlan(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendScreen(ctx, b, update, planner.Navigate{Screen: planner.ScreenPlanner})
}

// HandleCart обрабатывает команду /cart. С пустой корзиной открывается планировщик.
func (h *Handlers) HandleCart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendScreen(ctx, b, update, planner.Navigate{Screen: planner.ScreenCheckout})
}

// HandleReset обрабатывает команду /reset
func (h *Handlers) HandleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sessions.Clear(update.Message.From.ID)
	h.sendScreen(ctx, b, update, planner.Reset{})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, HelpText(h.devMode))
}

// HandleRequests показывает последние отправленные заявки (/requests)
func (h *Handlers) HandleRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	reqs, err := h.checkoutService.History(ctx, update.Message.From.ID, historyLimit)
	if errors.Is(err, checkout.ErrHistoryUnavailable) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Request history is not kept on this server.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load enrollment history", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Could not load your requests. Try again later.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, HistoryText(reqs))
}

// HandleAddBatch добавляет тестовую группу в каталог (/addbatch)
func (h *Handlers) HandleAddBatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireDevMode(ctx, b, update) {
		return
	}

	slot, err := h.plannerService.AddDemoBatch(ctx, h.center)
	if err != nil {
		h.logger.Error("Failed to add demo batch", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Could not add a sample batch.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"✅ Added sample batch <code>%s</code>\n%s · %s · %s",
		html.EscapeString(slot.ID),
		model.WeekdayShort(slot.DayOfWeek),
		html.EscapeString(slot.TimeRange),
		html.EscapeString(slot.Subject),
	))
}

// HandleReload перечитывает каталог из источника (/reload)
func (h *Handlers) HandleReload(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireDevMode(ctx, b, update) {
		return
	}

	if h.reload == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Catalog reload is not configured.")
		return
	}

	if err := h.reload(ctx); err != nil {
		h.logger.Error("Manual catalog reload failed", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Catalog reload failed, the previous catalog is kept.")
		return
	}

	slots, version := h.plannerService.Catalog()
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("🔄 Catalog reloaded: %d sessions, version %d", len(slots), version))
}

// HandleTextMessage отвечает на любой текст подсказкой
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Use /plan to pick weekly sessions or /help for the command list.")
}

// HistoryText список заявок для /requests
func HistoryText(reqs []*model.EnrollmentRequest) string {
	if len(reqs) == 0 {
		return "📭 You have not sent any enrollment requests yet. Use /plan to start."
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Your requests</b>\n")
	for _, r := range reqs {
		sb.WriteString(fmt.Sprintf("\n<code>%s</code> · %s\n", r.ID.String()[:8], r.CreatedAt.Format("02 Jan 2006")))
		for _, s := range r.Items {
			sb.WriteString(fmt.Sprintf("  • %s %s · %s\n",
				model.WeekdayShort(s.DayOfWeek), html.EscapeString(s.TimeRange), html.EscapeString(s.Subject)))
		}
		sb.WriteString(fmt.Sprintf("  Due / month: %s\n", formatting.FormatCoins(r.Due)))
	}
	return sb.String()
}

// HelpText справка по командам
func HelpText(devMode bool) string {
	text := "📚 <b>Commands</b>\n\n" +
		"/start - Welcome and discount tiers\n" +
		"/plan - Weekly planner\n" +
		"/cart - Review your plan and confirm\n" +
		"/reset - Start over\n" +
		"/requests - Your sent requests\n" +
		"/help - Show this help\n\n" +
		"Pick a day, narrow down by time and subject, then tap sessions to add them. " +
		"The more weekly sessions you add, the bigger the monthly discount."

	if devMode {
		text += "\n\n<b>Development</b>\n" +
			"/addbatch - Add a sample batch to the catalog\n" +
			"/reload - Reload the catalog from its source"
	}
	return text
}
