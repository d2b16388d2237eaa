package cart

import (
	"fmt"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

// SelectionError reports a required choice missing from an item configuration
type SelectionError struct {
	ItemID string
	Field  string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("item %s: %s must be selected", e.ItemID, e.Field)
}

func (e *SelectionError) Unwrap() error {
	return apperr.ErrSelection
}

// CheckSelection verifies that protein and size are chosen when the item offers them,
// and that every chosen option belongs to the item.
func CheckSelection(item *models.MenuItem, sizes []models.Size, protein string) error {
	if len(item.ProteinTypes) > 0 {
		if protein == "" {
			return &SelectionError{ItemID: item.ID, Field: "protein"}
		}
		if !item.HasProtein(protein) {
			return fmt.Errorf("item %s: unknown protein %q: %w", item.ID, protein, apperr.ErrSelection)
		}
	}
	if len(item.Sizes) > 0 && len(sizes) == 0 {
		return &SelectionError{ItemID: item.ID, Field: "size"}
	}
	for _, s := range sizes {
		if _, ok := item.FindSize(s.ID); !ok {
			return fmt.Errorf("item %s: unknown size %q: %w", item.ID, s.ID, apperr.ErrSelection)
		}
	}
	return nil
}
