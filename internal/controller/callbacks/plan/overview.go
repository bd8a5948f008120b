package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/formatting"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/Freeeeeet/afterschool_planner/internal/render"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleOverview отправляет картинку недельного плана
func HandleOverview(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snap := hc.Snapshot()

		imageData, err := render.GenerateWeekImage(snap.Overview, render.WeekImageOptions{
			Title:     "Weekly plan · " + h.Center,
			ActiveDay: snap.Filter.ActiveDay,
			Quote:     snap.Quote,
		})
		if err != nil {
			common.HandleError(hc, err, "week_image")
			return
		}

		if err := hc.SendPhoto("week.png", imageData, summaryCaption("🗓 <b>Your week</b>", snap.Quote)); err != nil {
			common.HandleError(hc, err, "send_week_image")
			return
		}

		resendScreen(hc, snap)
		hc.Answer("")
	})
}

// HandleExport отправляет план файлом Excel
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snap := hc.Snapshot()
		if snap.Cart.IsEmpty() {
			hc.AnswerAlert(common.ErrorMessage(common.ErrEmptyPlan))
			return
		}

		data, err := render.ExportPlanXLSX(snap.Cart.Sorted(), snap.Quote)
		if err != nil {
			common.HandleError(hc, err, "export_xlsx")
			return
		}

		name := render.PlanFileName(time.Now())
		if err := hc.SendDocument(name, data, summaryCaption("📄 <b>Weekly plan</b>", snap.Quote)); err != nil {
			common.HandleError(hc, err, "send_xlsx")
			return
		}

		h.Logger.Info("Plan exported",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int("slots", snap.Quote.Count))

		resendScreen(hc, snap)
		hc.Answer("")
	})
}

// resendScreen переносит экран под отправленный файл
func resendScreen(hc *common.HandlerContext, snap planner.Snapshot) {
	text, kb := common.BuildScreen(snap, hc.Handler.Planner.Tiers(), hc.Handler.Center)
	if err := hc.Resend(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to resend screen",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}

func summaryCaption(title string, q planner.Quote) string {
	if q.Count == 0 {
		return title + "\nNothing selected yet."
	}
	return fmt.Sprintf("%s\n%d %s · Due / month: %s",
		title, q.Count, formatting.PluralizeSessions(q.Count), formatting.FormatCoins(q.Due))
}
