package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/cucumber/godog"
)

type plannerTestContext struct {
	catalog []model.Slot
	state   planner.State
}

func (c *plannerTestContext) reset() {
	c.catalog = nil
	c.state = planner.NewState()
}

func (c *plannerTestContext) snapshot() planner.Snapshot {
	return planner.Derive(c.state, c.catalog, planner.DefaultTiers)
}

func (c *plannerTestContext) aCatalogSlot(id string, day int, timeRange, subject string, price, seats int) error {
	c.catalog = append(c.catalog, model.Slot{
		ID:        id,
		DayOfWeek: day,
		TimeRange: timeRange,
		Subject:   subject,
		Price:     int64(price),
		SeatsLeft: seats,
		Status:    model.SlotStatusOpen,
	})
	return nil
}

func (c *plannerTestContext) iToggleSlot(id string) error {
	for _, s := range c.catalog {
		if s.ID == id {
			c.state = planner.Reduce(c.state, planner.ToggleSlot{Slot: s})
			return nil
		}
	}
	return fmt.Errorf("slot %q is not in the catalog", id)
}

func (c *plannerTestContext) iKeepOnlyTheTimeBand(name string) error {
	band, ok := planner.ParseBand(name)
	if !ok {
		return fmt.Errorf("unknown band %q", name)
	}
	for _, b := range planner.AllBands {
		if b != band && c.state.Filter.Bands.Has(b) {
			c.state = planner.Reduce(c.state, planner.ToggleBand{Band: b})
		}
	}
	return nil
}

func (c *plannerTestContext) theCartContainsSlots(n int) error {
	if got := c.state.Cart.Count(); got != n {
		return fmt.Errorf("expected %d slots in cart, got %d", n, got)
	}
	return nil
}

func (c *plannerTestContext) theSubtotalIs(v int) error {
	if got := c.snapshot().Quote.Subtotal; got != int64(v) {
		return fmt.Errorf("expected subtotal %d, got %d", v, got)
	}
	return nil
}

func (c *plannerTestContext) theDiscountIs(v int) error {
	if got := c.snapshot().Quote.Discount; got != int64(v) {
		return fmt.Errorf("expected discount %d, got %d", v, got)
	}
	return nil
}

func (c *plannerTestContext) theAmountDueIs(v int) error {
	if got := c.snapshot().Quote.Due; got != int64(v) {
		return fmt.Errorf("expected due %d, got %d", v, got)
	}
	return nil
}

func (c *plannerTestContext) iAmToldToAddMoreToSave(more, save int) error {
	next := c.snapshot().Quote.NextTier
	if next == nil {
		return fmt.Errorf("expected next tier, got none")
	}
	if next.More != more || next.Save != int64(save) {
		return fmt.Errorf("expected add %d to save %d, got add %d to save %d", more, save, next.More, next.Save)
	}
	return nil
}

func (c *plannerTestContext) thereIsNoNextTier() error {
	if next := c.snapshot().Quote.NextTier; next != nil {
		return fmt.Errorf("expected no next tier, got %+v", *next)
	}
	return nil
}

func (c *plannerTestContext) theVisibleSlotsAre(list string) error {
	var got []string
	for _, s := range c.snapshot().Filtered {
		got = append(got, s.ID)
	}
	if strings.Join(got, ",") != list {
		return fmt.Errorf("expected visible slots %q, got %q", list, strings.Join(got, ","))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &plannerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^a catalog slot "([^"]*)" on day (\d+) at "([^"]*)" for "([^"]*)" costing (\d+) with (\d+) seats$`, tc.aCatalogSlot)

	// When
	ctx.Step(`^I toggle slot "([^"]*)"$`, tc.iToggleSlot)
	ctx.Step(`^I keep only the "([^"]*)" time band$`, tc.iKeepOnlyTheTimeBand)

	// Then
	ctx.Step(`^the cart contains (\d+) slots$`, tc.theCartContainsSlots)
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the discount is (\d+)$`, tc.theDiscountIs)
	ctx.Step(`^the amount due is (\d+)$`, tc.theAmountDueIs)
	ctx.Step(`^I am told to add (\d+) more to save (\d+)$`, tc.iAmToldToAddMoreToSave)
	ctx.Step(`^there is no next tier$`, tc.thereIsNoNextTier)
	ctx.Step(`^the visible slots are "([^"]*)"$`, tc.theVisibleSlotsAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/planner.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
