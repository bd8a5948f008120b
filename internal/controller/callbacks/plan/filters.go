package plan

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleSelectDay переключает вкладку дня
func HandleSelectDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, day int) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !model.ValidDay(day) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		snap := hc.Apply(planner.SelectDay{Day: day})
		common.RenderAndAnswer(hc, snap, model.WeekdayName(day))
	})
}

// HandleToggleBand включает или выключает интервал времени
func HandleToggleBand(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, band planner.Band) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snap := hc.Apply(planner.ToggleBand{Band: band})
		common.RenderAndAnswer(hc, snap, "")
	})
}

// HandleToggleSubject включает или выключает предмет по индексу в списке каталога
func HandleToggleSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, idx int) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		subject, ok := h.Planner.SubjectAt(idx)
		if !ok {
			// каталог перезагрузился и список предметов сдвинулся
			if err := hc.Render(hc.Snapshot()); err != nil {
				common.HandleError(hc, err, "toggle_subject")
				return
			}
			hc.AnswerAlert(common.ErrorMessage(common.ErrSubjectNotFound))
			return
		}
		snap := hc.Apply(planner.ToggleSubject{Subject: subject, Universe: h.Planner.Subjects()})
		common.RenderAndAnswer(hc, snap, "")
	})
}

// HandleAllSubjects снимает фильтр по предметам
func HandleAllSubjects(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snap := hc.Apply(planner.ShowAllSubjects{})
		common.RenderAndAnswer(hc, snap, "")
	})
}
