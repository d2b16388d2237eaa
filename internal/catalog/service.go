package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// Service owns the storefront's menu snapshot and operating config.
// Admin changes go through Apply and are recorded in the audit log.
type Service struct {
	store  Store
	cache  Cache
	logger *logger.Logger
	now    func() time.Time

	mu        sync.RWMutex
	snapshot  *Snapshot
	overrides map[string]decimal.Decimal
	added     []models.MenuItem
	deleted   map[string]bool
	config    models.RestaurantConfig
	audit     []AuditEntry
}

// NewService creates a catalog service. cache may be nil.
func NewService(store Store, cache Cache, cfg models.RestaurantConfig, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		logger:    log,
		now:       time.Now,
		snapshot:  &Snapshot{},
		overrides: make(map[string]decimal.Decimal),
		deleted:   make(map[string]bool),
		config:    cfg.Clone(),
	}
}

// Load warms the snapshot from the cache and falls back to the store.
func (s *Service) Load(ctx context.Context) error {
	if s.cache != nil {
		cached, err := s.cache.Load(ctx)
		if err != nil {
			s.logger.Error("catalog_cache_load_failed", "Failed to load catalog from cache", "", err, nil)
		} else if cached != nil {
			s.setSnapshot(cached)
			s.logger.Info("catalog_loaded", "Catalog loaded from cache", "", map[string]interface{}{
				"items": len(cached.Items),
			})
			return nil
		}
	}
	_, err := s.Refresh(ctx)
	return err
}

// Refresh re-reads the menu from the store. On failure the previous snapshot is kept.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	categories, err := s.store.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w: %w", apperr.ErrCollaborator, err)
	}

	items, err := s.store.FetchMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch menu items: %w: %w", apperr.ErrCollaborator, err)
	}

	snap := Organize(categories, items, s.now().UTC())
	s.setSnapshot(snap)

	if s.cache != nil {
		if err := s.cache.Save(ctx, snap); err != nil {
			s.logger.Error("catalog_cache_save_failed", "Failed to cache catalog snapshot", "", err, nil)
		}
	}

	s.logger.Info("catalog_refreshed", "Catalog refreshed from store", "", map[string]interface{}{
		"categories": len(snap.Categories),
		"items":      len(snap.Items),
	})
	return s.Snapshot(), nil
}

// Snapshot returns the current menu with local changes applied: price
// overrides, items added by staff and items deleted by staff.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot.clone()
	if len(s.added) > 0 || len(s.deleted) > 0 {
		snap = s.overlay(snap)
	}
	for i := range snap.Items {
		if price, ok := s.overrides[snap.Items[i].ID]; ok {
			snap.Items[i].Price = price
		}
	}
	return snap
}

// overlay drops deleted items, appends added ones and renumbers the menu.
// An added item whose id the store also returns is ignored.
func (s *Service) overlay(snap *Snapshot) *Snapshot {
	items := make([]models.MenuItem, 0, len(snap.Items)+len(s.added))
	present := make(map[string]bool, len(snap.Items))
	for _, item := range snap.Items {
		present[item.ID] = true
		if !s.deleted[item.ID] {
			items = append(items, item)
		}
	}
	for _, item := range s.added {
		if !present[item.ID] && !s.deleted[item.ID] {
			items = append(items, item)
		}
	}
	return Organize(snap.Categories, items, snap.FetchedAt)
}

// Item returns a single menu item with overrides applied
func (s *Service) Item(id string) (models.MenuItem, error) {
	item, ok := s.Snapshot().Item(id)
	if !ok {
		return models.MenuItem{}, fmt.Errorf("item %s: %w", id, apperr.ErrItemNotFound)
	}
	return item, nil
}

// Config returns a copy of the restaurant config
func (s *Service) Config() models.RestaurantConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Clone()
}

// Audit returns the applied commands, oldest first
func (s *Service) Audit() []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AuditEntry(nil), s.audit...)
}

// Apply runs an admin command and records it once it succeeds
func (s *Service) Apply(ctx context.Context, cmd Command, requestID string) error {
	if err := cmd.apply(ctx, s); err != nil {
		s.logger.Error("admin_command_failed", "Admin command failed", requestID, err, map[string]interface{}{
			"command": cmd.Name(),
		})
		return err
	}

	s.mu.Lock()
	entry := AuditEntry{
		Seq:       len(s.audit) + 1,
		Command:   cmd.Name(),
		Detail:    cmd,
		AppliedAt: s.now().UTC(),
		RequestID: requestID,
	}
	s.audit = append(s.audit, entry)
	s.mu.Unlock()

	s.logger.Info("admin_command_applied", "Admin command applied", requestID, map[string]interface{}{
		"command": cmd.Name(),
		"seq":     entry.Seq,
	})
	return nil
}

func (s *Service) setSnapshot(snap *Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}
