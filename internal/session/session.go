package session

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/cart"
	"restaurant-storefront/internal/models"
)

// Session is one customer's cart and checkout form. Its transitions are
// serialized by mu.
type Session struct {
	ID string

	mu         sync.Mutex
	cart       cart.Cart
	orderType  models.OrderType
	customer   models.CustomerDetails
	tierID     string
	lastOrder  *Receipt
	touchedAt  time.Time
	submitting bool
}

// State is a read-only view of a session
type State struct {
	ID          string                 `json:"session_id"`
	Lines       []models.CartLine      `json:"lines"`
	ItemCount   int                    `json:"item_count"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	OrderType   models.OrderType       `json:"order_type"`
	Customer    models.CustomerDetails `json:"customer"`
	TierID      *string                `json:"tier_id"`
	DeliveryFee decimal.Decimal        `json:"delivery_fee"`
	Total       decimal.Decimal        `json:"total"`
}

func newSession(id string, branch string, now time.Time) *Session {
	return &Session{
		ID:        id,
		cart:      cart.New(),
		orderType: models.Delivery,
		customer:  models.CustomerDetails{Branch: branch},
		touchedAt: now,
	}
}

// finish ends a submission started by Checkout
func (s *Session) finish(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.submitting = false
}

// tier resolves the chosen delivery tier; nil when unselected or no longer configured
func (s *Session) tier(cfg *models.RestaurantConfig) *models.DeliveryTier {
	if s.tierID == "" {
		return nil
	}
	t, ok := cfg.FindTier(s.tierID)
	if !ok {
		return nil
	}
	return &t
}

func (s *Session) state(cfg *models.RestaurantConfig) State {
	st := State{
		ID:          s.ID,
		Lines:       s.cart.Lines(),
		ItemCount:   s.cart.ItemCount(),
		Subtotal:    s.cart.Subtotal(),
		OrderType:   s.orderType,
		Customer:    s.customer,
		DeliveryFee: decimal.Zero,
	}

	if t := s.tier(cfg); t != nil {
		id := t.ID
		st.TierID = &id
		if s.orderType == models.Delivery {
			st.DeliveryFee = t.Fee
		}
	}
	st.Total = st.Subtotal.Add(st.DeliveryFee)
	return st
}
