package common

import (
	"errors"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
)

// ErrEmptyPlan сводку нельзя открыть без выбранных слотов
var ErrEmptyPlan = checkout.ErrEmptyCart

// Общие ошибки для обработчиков
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot is full or closed")
	ErrSubjectNotFound = errors.New("subject not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process this message. Use /plan"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Unknown button"
	case errors.Is(err, ErrSlotNotFound):
		return "❌ This session is no longer in the catalog"
	case errors.Is(err, ErrSlotUnavailable):
		return "⛔ This session is full"
	case errors.Is(err, ErrSubjectNotFound):
		return "❌ Subject list changed, please try again"
	case errors.Is(err, checkout.ErrEmptyCart):
		return "🛒 Your plan is empty"
	default:
		return "❌ Something went wrong"
	}
}
