package models

import "github.com/shopspring/decimal"

// OrderPlacedMessage is published to staff once an order has been submitted
type OrderPlacedMessage struct {
	OrderID      string          `json:"order_id"`
	OrderType    OrderType       `json:"order_type"`
	Branch       string          `json:"branch"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
	ContactID    string          `json:"contact_id"`
	Timestamp    string          `json:"timestamp"`
}

// NewOrderPlacedMessage builds the staff notification for a payload
func NewOrderPlacedMessage(p *OrderPayload, contactID string) *OrderPlacedMessage {
	count := 0
	for _, l := range p.Items {
		count += l.Quantity
	}
	return &OrderPlacedMessage{
		OrderID:      p.ID,
		OrderType:    p.OrderType,
		Branch:       p.Customer.Branch,
		CustomerName: p.Customer.Name,
		Phone:        p.Customer.Phone,
		ItemCount:    count,
		Total:        p.Total,
		ContactID:    contactID,
		Timestamp:    p.Timestamp,
	}
}
