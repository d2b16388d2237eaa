package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/cart"
	"restaurant-storefront/internal/models"
)

// Assemble snapshots the cart into an order payload. The cart must be non-empty
// and the customer already validated. Pickup orders never carry a delivery fee.
func Assemble(c cart.Cart, orderType models.OrderType, customer models.CustomerDetails, deliveryFee decimal.Decimal, tierID string, now time.Time) models.OrderPayload {
	if orderType != models.Delivery {
		deliveryFee = decimal.Zero
		tierID = ""
	}

	subtotal := c.Subtotal()
	return models.OrderPayload{
		ID:          uuid.NewString(),
		OrderType:   orderType,
		Customer:    customer,
		Items:       c.Lines(),
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Add(deliveryFee),
		TierID:      tierID,
		Timestamp:   now.UTC().Format(models.TimestampLayout),
	}
}
