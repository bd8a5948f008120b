package keyboard

import "github.com/go-telegram/bot/models"

// BackToPlannerButton возвращает к недельной сетке
func BackToPlannerButton() models.InlineKeyboardButton {
	return Button("⬅️ Back to planner", "screen:planner")
}

// CheckoutButton открывает сводку
func CheckoutButton(count int) models.InlineKeyboardButton {
	if count == 0 {
		return Button("🛒 Review plan", "noop")
	}
	return Button("🛒 Review plan", "screen:checkout")
}

// StartOverButton сбрасывает сессию
func StartOverButton() models.InlineKeyboardButton {
	return Button("🔄 Start over", "reset")
}
