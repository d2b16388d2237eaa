package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/catalog"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/order"
)

type checkoutTestContext struct {
	items   []models.MenuItem
	tiers   []models.DeliveryTier
	history *order.MemoryHistory
	manager *Manager
	id      string
	receipt *Receipt
	err     error
}

func (c *checkoutTestContext) reset() {
	*c = checkoutTestContext{}
}

func (c *checkoutTestContext) theMenuHasItemPricedWithSizeCosting(name string, price int, size string, delta int) error {
	c.items = append(c.items, models.MenuItem{
		ID:          fmt.Sprintf("%d", len(c.items)+1),
		CategoryID:  "main",
		Name:        name,
		Price:       decimal.NewFromInt(int64(price)),
		IsAvailable: true,
		Sizes:       []models.Size{{ID: strings.ToLower(size), Name: size, Price: decimal.NewFromInt(int64(delta))}},
	})
	return nil
}

func (c *checkoutTestContext) theDeliveryTiers(near, medium, far int) error {
	c.tiers = []models.DeliveryTier{
		{ID: "near", Label: "1-3 km", Fee: decimal.NewFromInt(int64(near))},
		{ID: "medium", Label: "3-6 km", Fee: decimal.NewFromInt(int64(medium))},
		{ID: "far", Label: "7-10 km", Fee: decimal.NewFromInt(int64(far))},
	}
	return nil
}

func (c *checkoutTestContext) aNewSession() error {
	cfg := models.RestaurantConfig{
		IsOpen:           true,
		DefaultContactID: "966500000000",
		MessageTemplate:  "---\n{items}\nSubtotal: {subtotal}\nTotal: {total}\nLocation: {customerLocation}",
		Branches:         []models.Branch{{Name: "Olaya"}},
		DeliveryTiers:    c.tiers,
	}
	store := catalog.NewMemoryStore([]models.Category{{ID: "main", Name: "Main"}}, c.items)
	cat := catalog.NewService(store, nil, cfg, logger.Discard())
	if _, err := cat.Refresh(context.Background()); err != nil {
		return err
	}

	c.history = order.NewMemoryHistory()
	c.manager = NewManager(cat, c.history, nil, logger.Discard())
	c.id = c.manager.Create().ID
	return nil
}

func (c *checkoutTestContext) itemID(name string) (string, error) {
	for _, item := range c.items {
		if item.Name == name {
			return item.ID, nil
		}
	}
	return "", fmt.Errorf("no menu item named %q", name)
}

func (c *checkoutTestContext) iAddInSize(quantity int, name, size string) error {
	id, err := c.itemID(name)
	if err != nil {
		return err
	}
	_, err = c.manager.AddItem(c.id, AddRequest{ItemID: id, SizeIDs: []string{strings.ToLower(size)}, Quantity: quantity})
	return err
}

func (c *checkoutTestContext) iEnterNameAndPhone(name, phone string) error {
	_, err := c.manager.UpdateCustomer(c.id, CustomerUpdate{Name: &name, Phone: &phone})
	return err
}

func (c *checkoutTestContext) iEnterLocation(loc string) error {
	_, err := c.manager.UpdateCustomer(c.id, CustomerUpdate{Location: &loc})
	return err
}

func (c *checkoutTestContext) iChooseTheDeliveryTier(tier string) error {
	_, err := c.manager.SelectTier(c.id, tier)
	return err
}

func (c *checkoutTestContext) iSwitchToPickup() error {
	_, err := c.manager.SetOrderType(c.id, models.Pickup)
	return err
}

func (c *checkoutTestContext) iCheckOut() error {
	c.receipt, c.err = c.manager.Checkout(context.Background(), c.id, "feature")
	return nil
}

func (c *checkoutTestContext) submitted() error {
	if c.err != nil {
		return fmt.Errorf("expected a submitted order but got error: %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) theOrderSubtotalIs(amount int) error {
	if err := c.submitted(); err != nil {
		return err
	}
	if !c.receipt.Order.Subtotal.Equal(decimal.NewFromInt(int64(amount))) {
		return fmt.Errorf("expected subtotal %d, got %s", amount, c.receipt.Order.Subtotal)
	}
	return nil
}

func (c *checkoutTestContext) theOrderTotalIs(amount int) error {
	if err := c.submitted(); err != nil {
		return err
	}
	if !c.receipt.Order.Total.Equal(decimal.NewFromInt(int64(amount))) {
		return fmt.Errorf("expected total %d, got %s", amount, c.receipt.Order.Total)
	}
	return nil
}

func (c *checkoutTestContext) theMessageContains(text string) error {
	if err := c.submitted(); err != nil {
		return err
	}
	if !strings.Contains(c.receipt.Message.Text, text) {
		return fmt.Errorf("message does not contain %q:\n%s", text, c.receipt.Message.Text)
	}
	decoded, err := url.QueryUnescape(c.receipt.Message.Encoded)
	if err != nil {
		return err
	}
	if decoded != c.receipt.Message.Text {
		return errors.New("encoded message does not decode to the rendered text")
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	st, err := c.manager.Get(c.id)
	if err != nil {
		return err
	}
	if st.ItemCount != 0 {
		return fmt.Errorf("expected empty cart, got %d items", st.ItemCount)
	}
	return nil
}

func (c *checkoutTestContext) theOrderHistoryHasOrders(n int) error {
	orders, err := c.history.List(context.Background(), 0)
	if err != nil {
		return err
	}
	if len(orders) != n {
		return fmt.Errorf("expected %d orders, got %d", n, len(orders))
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLineWithQuantity(lines, quantity int) error {
	st, err := c.manager.Get(c.id)
	if err != nil {
		return err
	}
	if len(st.Lines) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(st.Lines))
	}
	if st.Lines[0].Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, st.Lines[0].Quantity)
	}
	return nil
}

func (c *checkoutTestContext) checkoutFailsWithViolation(violation string) error {
	var vErr *order.ValidationError
	if !errors.As(c.err, &vErr) {
		return fmt.Errorf("expected a validation error, got %v", c.err)
	}
	if string(vErr.Violation) != violation {
		return fmt.Errorf("expected violation %s, got %s", violation, vErr.Violation)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the menu has "([^"]*)" priced (\d+) with size "([^"]*)" costing (\d+)$`, tc.theMenuHasItemPricedWithSizeCosting)
	ctx.Step(`^the delivery tiers near (\d+), medium (\d+) and far (\d+)$`, tc.theDeliveryTiers)
	ctx.Step(`^a new session$`, tc.aNewSession)

	// When steps
	ctx.Step(`^I add (\d+) "([^"]*)" in size "([^"]*)"$`, tc.iAddInSize)
	ctx.Step(`^I enter name "([^"]*)" and phone "([^"]*)"$`, tc.iEnterNameAndPhone)
	ctx.Step(`^I enter location "([^"]*)"$`, tc.iEnterLocation)
	ctx.Step(`^I choose the "([^"]*)" delivery tier$`, tc.iChooseTheDeliveryTier)
	ctx.Step(`^I switch to pickup$`, tc.iSwitchToPickup)
	ctx.Step(`^I check out$`, tc.iCheckOut)

	// Then steps
	ctx.Step(`^the order subtotal is (\d+)$`, tc.theOrderSubtotalIs)
	ctx.Step(`^the order total is (\d+)$`, tc.theOrderTotalIs)
	ctx.Step(`^the message contains "([^"]*)"$`, tc.theMessageContains)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the order history has (\d+) orders?$`, tc.theOrderHistoryHasOrders)
	ctx.Step(`^the cart has (\d+) lines? with quantity (\d+)$`, tc.theCartHasLineWithQuantity)
	ctx.Step(`^checkout fails with violation "([^"]*)"$`, tc.checkoutFailsWithViolation)
}

func TestCheckoutFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
