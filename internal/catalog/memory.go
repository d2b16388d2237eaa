package catalog

import (
	"context"
	"fmt"
	"sync"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

// MemoryStore is an in-process Store, used for local runs and tests
type MemoryStore struct {
	mu         sync.Mutex
	categories []models.Category
	items      []models.MenuItem
	err        error
}

func NewMemoryStore(categories []models.Category, items []models.MenuItem) *MemoryStore {
	return &MemoryStore{
		categories: append([]models.Category(nil), categories...),
		items:      append([]models.MenuItem(nil), items...),
	}
}

// FailWith makes every subsequent call return err until reset with nil
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *MemoryStore) FetchCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Category(nil), m.categories...), nil
}

func (m *MemoryStore) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	var out []models.MenuItem
	for _, item := range m.items {
		if item.IsAvailable {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryStore) SetAvailability(ctx context.Context, itemID string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	for i := range m.items {
		if m.items[i].ID == itemID {
			m.items[i].IsAvailable = available
			return nil
		}
	}
	return fmt.Errorf("item %s: %w", itemID, apperr.ErrItemNotFound)
}
