package state

import "github.com/Freeeeeet/afterschool_planner/internal/planner"

// Session данные одного пользователя бота
type Session struct {
	Planner planner.State

	// MessageID сообщение с экраном планировщика, которое редактируется на месте
	MessageID int
	// CatalogVersion версия каталога, с которой последний раз сверялась корзина
	CatalogVersion int64
}

// NewSession новая сессия на экране приветствия
func NewSession() Session {
	return Session{Planner: planner.NewState()}
}
