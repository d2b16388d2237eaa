package catalog

import (
	"context"

	"restaurant-storefront/internal/models"
)

// Store is the persistent source of the menu
type Store interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	// FetchMenuItems returns available items only
	FetchMenuItems(ctx context.Context) ([]models.MenuItem, error)
	SetAvailability(ctx context.Context, itemID string, available bool) error
}

// Cache holds the last organized snapshot between process restarts.
// Load returns nil without error on a miss.
type Cache interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
	Invalidate(ctx context.Context) error
}
