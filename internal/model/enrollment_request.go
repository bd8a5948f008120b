package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentRequest заявка на запись по выбранному недельному плану.
// Оплата здесь не проводится, заявку обрабатывает центр.
type EnrollmentRequest struct {
	ID       uuid.UUID `json:"id"`
	UserID   int64     `json:"user_id"`
	Center   string    `json:"center"`
	Items    []Slot    `json:"items"`
	Count    int       `json:"count"`
	Subtotal int64     `json:"subtotal"`
	Discount int64     `json:"discount"`
	Due      int64     `json:"due"`

	CreatedAt time.Time `json:"created_at"`
}
