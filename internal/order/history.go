package order

import (
	"context"
	"sync"

	"restaurant-storefront/internal/models"
)

// History is the append-only record of submitted orders
type History interface {
	Append(ctx context.Context, p models.OrderPayload) error
	List(ctx context.Context, limit int) ([]models.OrderPayload, error)
}

// MemoryHistory keeps submitted orders in process, newest first
type MemoryHistory struct {
	mu     sync.RWMutex
	orders []models.OrderPayload
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) Append(ctx context.Context, p models.OrderPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.orders = append([]models.OrderPayload{p.Clone()}, h.orders...)
	return nil
}

// List returns up to limit orders, newest first. A non-positive limit returns all.
func (h *MemoryHistory) List(ctx context.Context, limit int) ([]models.OrderPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.orders)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.OrderPayload, n)
	for i := 0; i < n; i++ {
		out[i] = h.orders[i].Clone()
	}
	return out, nil
}
