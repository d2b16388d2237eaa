package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

// CatalogStore reads the menu from PostgreSQL
type CatalogStore struct {
	db *DB
}

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) FetchCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Pool.Query(ctx, GetCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FetchMenuItems returns available items with their sizes and extras attached
func (s *CatalogStore) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Pool.Query(ctx, GetAvailableMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	index := make(map[string]int)
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Ingredients,
			&item.Image, &item.Price, &item.ProteinTypes, &item.IsAvailable)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachOptions(ctx, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogStore) attachOptions(ctx context.Context, items []models.MenuItem, index map[string]int) error {
	rows, err := s.db.Pool.Query(ctx, GetItemOptionsSQL)
	if err != nil {
		return fmt.Errorf("failed to query item options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, itemID, kind, name string
			price                  decimal.Decimal
		)
		if err := rows.Scan(&id, &itemID, &kind, &name, &price); err != nil {
			return fmt.Errorf("failed to scan item option: %w", err)
		}

		i, ok := index[itemID]
		if !ok {
			continue
		}
		switch kind {
		case "size":
			items[i].Sizes = append(items[i].Sizes, models.Size{ID: id, Name: name, Price: price})
		case "extra":
			items[i].Extras = append(items[i].Extras, models.Extra{ID: id, Name: name, Price: price})
		}
	}
	return rows.Err()
}

func (s *CatalogStore) SetAvailability(ctx context.Context, itemID string, available bool) error {
	tag, err := s.db.Pool.Exec(ctx, SetItemAvailabilitySQL, available, itemID)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, apperr.ErrItemNotFound)
	}
	return nil
}
