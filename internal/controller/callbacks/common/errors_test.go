package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "⛔ This session is full", ErrorMessage(fmt.Errorf("toggle: %w", ErrSlotUnavailable)))
	assert.Equal(t, "🛒 Your plan is empty", ErrorMessage(checkout.ErrEmptyCart))
	assert.Equal(t, "❌ Something went wrong", ErrorMessage(errors.New("boom")))
}
