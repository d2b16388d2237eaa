package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

// Command is an admin change to the menu or the restaurant config
type Command interface {
	Name() string
	apply(ctx context.Context, s *Service) error
}

// AuditEntry records one applied command
type AuditEntry struct {
	Seq       int       `json:"seq"`
	Command   string    `json:"command"`
	Detail    Command   `json:"detail"`
	AppliedAt time.Time `json:"applied_at"`
	RequestID string    `json:"request_id,omitempty"`
}

// UpdatePrice overrides an item's base price in this process only.
// The override survives refreshes until the process restarts.
type UpdatePrice struct {
	ItemID string          `json:"item_id"`
	Price  decimal.Decimal `json:"price"`
}

func (c UpdatePrice) Name() string { return "update_price" }

func (c UpdatePrice) apply(_ context.Context, s *Service) error {
	if c.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", apperr.ErrValidation)
	}
	if _, err := s.Item(c.ItemID); err != nil {
		return err
	}

	s.mu.Lock()
	s.overrides[c.ItemID] = c.Price
	s.mu.Unlock()
	return nil
}

// ToggleAvailability flips an item's availability in the store and re-fetches
// the menu. Items missing from the snapshot are hidden and become available.
type ToggleAvailability struct {
	ItemID string `json:"item_id"`
}

func (c ToggleAvailability) Name() string { return "toggle_availability" }

func (c ToggleAvailability) apply(ctx context.Context, s *Service) error {
	current := false
	if item, ok := s.Snapshot().Item(c.ItemID); ok {
		current = item.IsAvailable
	}

	if err := s.store.SetAvailability(ctx, c.ItemID, !current); err != nil {
		if errors.Is(err, apperr.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("set availability of %s: %w: %w", c.ItemID, apperr.ErrCollaborator, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("catalog_cache_invalidate_failed", "Failed to invalidate catalog cache", "", err, nil)
		}
	}

	_, err := s.Refresh(ctx)
	return err
}

// AddMenuItem puts a new, available item on the menu of this process.
// Like price overrides it survives refreshes until restart.
type AddMenuItem struct {
	Item models.MenuItem `json:"item"`
}

func (c AddMenuItem) Name() string { return "add_menu_item" }

func (c AddMenuItem) apply(_ context.Context, s *Service) error {
	item := c.Item
	switch {
	case strings.TrimSpace(item.ID) == "":
		return fmt.Errorf("item id is required: %w", apperr.ErrValidation)
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("item name is required: %w", apperr.ErrValidation)
	case item.Price.IsNegative():
		return fmt.Errorf("price must not be negative: %w", apperr.ErrValidation)
	}

	snap := s.Snapshot()
	if _, ok := snap.Item(item.ID); ok {
		return fmt.Errorf("item %s already exists: %w", item.ID, apperr.ErrValidation)
	}
	known := false
	for _, cat := range snap.Categories {
		if cat.ID == item.CategoryID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q: %w", item.CategoryID, apperr.ErrValidation)
	}

	item.IsAvailable = true
	item.DisplayID = ""
	item.Sizes = append([]models.Size(nil), item.Sizes...)
	item.Extras = append([]models.Extra(nil), item.Extras...)
	item.ProteinTypes = append([]string(nil), item.ProteinTypes...)

	s.mu.Lock()
	delete(s.deleted, item.ID)
	s.added = append(s.added, item)
	s.mu.Unlock()
	return nil
}

// DeleteMenuItem removes an item from the menu of this process
type DeleteMenuItem struct {
	ItemID string `json:"item_id"`
}

func (c DeleteMenuItem) Name() string { return "delete_menu_item" }

func (c DeleteMenuItem) apply(_ context.Context, s *Service) error {
	if _, err := s.Item(c.ItemID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted[c.ItemID] = true
	delete(s.overrides, c.ItemID)
	kept := s.added[:0]
	for _, item := range s.added {
		if item.ID != c.ItemID {
			kept = append(kept, item)
		}
	}
	s.added = kept
	return nil
}

// UpdateRestaurantConfig replaces the operating config as a whole
type UpdateRestaurantConfig struct {
	Config models.RestaurantConfig `json:"config"`
}

func (c UpdateRestaurantConfig) Name() string { return "update_restaurant_config" }

func (c UpdateRestaurantConfig) apply(_ context.Context, s *Service) error {
	if err := validateConfig(&c.Config); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = c.Config.Clone()
	s.mu.Unlock()
	return nil
}

func validateConfig(cfg *models.RestaurantConfig) error {
	seen := make(map[string]bool)
	for _, b := range cfg.Branches {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("branch name is required: %w", apperr.ErrValidation)
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate branch %q: %w", b.Name, apperr.ErrValidation)
		}
		seen[b.Name] = true
	}

	tiers := make(map[string]bool)
	for _, t := range cfg.DeliveryTiers {
		if t.ID == "" {
			return fmt.Errorf("delivery tier id is required: %w", apperr.ErrValidation)
		}
		if tiers[t.ID] {
			return fmt.Errorf("duplicate delivery tier %q: %w", t.ID, apperr.ErrValidation)
		}
		if t.Fee.IsNegative() {
			return fmt.Errorf("delivery tier %q fee must not be negative: %w", t.ID, apperr.ErrValidation)
		}
		tiers[t.ID] = true
	}

	if cfg.DefaultContactID == "" {
		return fmt.Errorf("default contact id is required: %w", apperr.ErrValidation)
	}
	return nil
}
