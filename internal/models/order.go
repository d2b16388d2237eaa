package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents how the order reaches the customer
type OrderType string

const (
	Delivery OrderType = "delivery"
	Pickup   OrderType = "pickup"
)

// TimestampLayout is the fixed, lexically sortable layout used for order timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseOrderType validates a raw order type value
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case Delivery, Pickup:
		return OrderType(s), nil
	default:
		return "", fmt.Errorf("order_type must be one of: delivery, pickup")
	}
}

// CustomerDetails is filled in by the checkout form
type CustomerDetails struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes,omitempty"`
	Location string `json:"location,omitempty"`
	Branch   string `json:"branch"`
}

// OrderPayload is the immutable snapshot of a submitted order
type OrderPayload struct {
	ID          string          `json:"id"`
	OrderType   OrderType       `json:"order_type"`
	Customer    CustomerDetails `json:"customer"`
	Items       []CartLine      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	TierID      string          `json:"tier_id,omitempty"`
	Timestamp   string          `json:"timestamp"`
}

// CreatedAt parses the payload timestamp
func (p *OrderPayload) CreatedAt() (time.Time, error) {
	return time.Parse(TimestampLayout, p.Timestamp)
}

// Clone returns a deep copy of the payload
func (p OrderPayload) Clone() OrderPayload {
	c := p
	c.Items = make([]CartLine, len(p.Items))
	for i, l := range p.Items {
		c.Items[i] = l.Clone()
	}
	return c
}
