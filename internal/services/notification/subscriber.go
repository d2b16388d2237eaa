package notification

import (
	"context"
	"fmt"
	"io"
	"time"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/messaging"
	"restaurant-storefront/internal/models"
)

// Consumer delivers raw message bodies to a handler until ctx is done
type Consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
}

// Subscriber prints every submitted order to the staff order feed
type Subscriber struct {
	consumer Consumer
	logger   *logger.Logger
	out      io.Writer
}

func NewSubscriber(consumer Consumer, log *logger.Logger, out io.Writer) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      out,
	}
}

// Start blocks consuming order notifications until ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Staff order feed started", requestID, nil)

	if err := s.consumer.StartConsuming(ctx, s.handleOrderPlaced); err != nil {
		s.logger.Error("consumer_failed", "Order feed consumer failed", requestID, err, nil)
		return err
	}

	s.logger.Info("graceful_shutdown", "Staff order feed stopped", requestID, nil)
	return nil
}

func (s *Subscriber) handleOrderPlaced(ctx context.Context, body []byte) error {
	var msg models.OrderPlacedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		return fmt.Errorf("failed to parse order notification: %w", err)
	}

	if _, err := fmt.Fprintln(s.out, FormatOrder(&msg)); err != nil {
		return fmt.Errorf("failed to write order feed: %w", err)
	}

	s.logger.Info("order_announced", "Order shown in staff feed", msg.OrderID, map[string]interface{}{
		"order_type": string(msg.OrderType),
		"branch":     msg.Branch,
		"total":      msg.Total.String(),
	})
	return nil
}

// FormatOrder renders a one-line, human-readable feed entry
func FormatOrder(msg *models.OrderPlacedMessage) string {
	ts := msg.Timestamp
	if t, err := time.Parse(models.TimestampLayout, msg.Timestamp); err == nil {
		ts = t.Format("2006-01-02 15:04:05")
	}

	kind := "pickup"
	if msg.OrderType == models.Delivery {
		kind = "delivery"
	}

	name := msg.CustomerName
	if name == "" {
		name = "Valued customer"
	}

	return fmt.Sprintf("[%s] New %s order %s at %s: %d item(s), %s SAR, %s (%s)",
		ts, kind, shortID(msg.OrderID), msg.Branch, msg.ItemCount, msg.Total.String(), name, msg.Phone)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
