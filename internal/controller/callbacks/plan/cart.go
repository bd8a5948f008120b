package plan

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToggleSlot добавляет слот в план или убирает его
func HandleToggleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, slotID string) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slot, ok := h.Planner.FindSlot(slotID)
		if !ok {
			h.Logger.Warn("Slot not in catalog",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("slot_id", slotID))
			if err := hc.Render(hc.Snapshot()); err != nil {
				common.HandleError(hc, err, "toggle_slot")
				return
			}
			hc.AnswerAlert(common.ErrorMessage(common.ErrSlotNotFound))
			return
		}

		selected := hc.Session.Planner.Cart.Contains(slotID)
		if !selected && slot.Disabled() {
			hc.AnswerAlert(common.ErrorMessage(common.ErrSlotUnavailable))
			return
		}

		snap := hc.Apply(planner.ToggleSlot{Slot: slot})
		common.RenderAndAnswer(hc, snap, ToggleAnswer(!selected, snap.Quote))
	})
}

// ToggleAnswer короткое уведомление после изменения корзины
func ToggleAnswer(added bool, q planner.Quote) string {
	text := "Removed"
	if added {
		text = "Added"
	}
	if q.NextTier != nil && q.Count > 0 {
		text += ". " + common.NudgeText(q.NextTier)
	}
	return text
}
