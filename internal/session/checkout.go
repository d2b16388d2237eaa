package session

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/message"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/order"
)

// Receipt is the result of a successful submission
type Receipt struct {
	Order    models.OrderPayload `json:"order"`
	Message  message.Outbound    `json:"message"`
	Notified bool                `json:"staff_notified"`
}

// Checkout validates the form, snapshots the cart, records the order and
// clears the cart. If recording fails the cart and form are left intact.
// Staff notification is best-effort. Storage and notification run without
// the session lock; other changes to the session are refused until they finish.
func (m *Manager) Checkout(ctx context.Context, id, requestID string) (*Receipt, error) {
	var (
		sess    *Session
		payload models.OrderPayload
		out     message.Outbound
	)
	err := m.update(id, func(s *Session, cfg *models.RestaurantConfig) error {
		if s.submitting {
			return fmt.Errorf("session %s: %w", s.ID, apperr.ErrCheckoutInProgress)
		}
		p, o, err := m.prepare(s, cfg)
		if err != nil {
			return err
		}
		sess, payload, out = s, p, o
		s.submitting = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.history.Append(ctx, payload); err != nil {
		m.logger.Error("order_submit_failed", "Failed to record order", requestID, err, map[string]interface{}{
			"session_id": id,
			"order_id":   payload.ID,
		})
		sess.finish(func() {})
		return nil, fmt.Errorf("record order %s: %w: %w", payload.ID, apperr.ErrSubmission, err)
	}

	receipt := &Receipt{Order: payload, Message: out}
	if m.publisher != nil {
		msg := models.NewOrderPlacedMessage(&payload, out.ContactID)
		if err := m.publisher.PublishOrderPlaced(ctx, msg); err != nil {
			m.logger.Error("order_notify_failed", "Failed to notify staff", requestID, err, map[string]interface{}{
				"order_id": payload.ID,
			})
		} else {
			receipt.Notified = true
		}
	}

	sess.finish(func() {
		sess.cart = sess.cart.Clear()
		sess.tierID = ""
		sess.lastOrder = receipt
	})

	m.logger.Info("order_submitted", "Order submitted", requestID, map[string]interface{}{
		"session_id": id,
		"order_id":   payload.ID,
		"order_type": string(payload.OrderType),
		"total":      payload.Total.String(),
		"contact_id": out.ContactID,
	})
	return receipt, nil
}

// prepare checks the session can be submitted and builds the order and its message
func (m *Manager) prepare(s *Session, cfg *models.RestaurantConfig) (models.OrderPayload, message.Outbound, error) {
	if !cfg.IsOpen {
		return models.OrderPayload{}, message.Outbound{}, apperr.ErrRestaurantClosed
	}
	if s.cart.IsEmpty() {
		return models.OrderPayload{}, message.Outbound{}, apperr.ErrCartEmpty
	}

	tier := s.tier(cfg)
	if err := order.Validate(s.orderType, s.customer, tier); err != nil {
		return models.OrderPayload{}, message.Outbound{}, err
	}

	fee, tierID := decimal.Zero, ""
	if tier != nil {
		fee, tierID = tier.Fee, tier.ID
	}

	payload := order.Assemble(s.cart, s.orderType, s.customer, fee, tierID, m.now())
	return payload, message.Build(cfg, &payload), nil
}

// Orders lists submitted orders newest first
func (m *Manager) Orders(ctx context.Context, limit int) ([]models.OrderPayload, error) {
	orders, err := m.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w: %w", apperr.ErrCollaborator, err)
	}
	return orders, nil
}
