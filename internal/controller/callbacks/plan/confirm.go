package plan

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleConfirm отправляет заявку на запись и очищает план
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		cart := hc.Session.Planner.Cart
		if cart.IsEmpty() {
			// корзина могла опустеть после сверки с каталогом
			if err := hc.Render(hc.Snapshot()); err != nil {
				common.HandleError(hc, err, "confirm")
				return
			}
			hc.AnswerAlert(common.ErrorMessage(common.ErrEmptyPlan))
			return
		}

		req, err := h.Checkout.Submit(hc.Ctx, hc.TelegramID, cart)
		if h.Metrics != nil {
			var due int64
			if req != nil {
				due = req.Due
			}
			h.Metrics.ObserveCheckout(err == nil, due)
		}
		if err != nil {
			common.HandleError(hc, err, "checkout")
			return
		}

		hc.Apply(planner.Reset{})

		text, kb := common.BuildConfirmedScreen(req)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "confirm_screen")
			return
		}
		hc.Answer("✅ Request sent")
	})
}
