package models

import "github.com/shopspring/decimal"

// Category groups menu items for browsing
type Category struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Icon       string `json:"icon,omitempty" db:"icon"`
	OrderIndex int    `json:"order_index" db:"order_index"`
}

// Size is a mutually exclusive variant of a menu item. Its price is a delta
// added to the item's base price.
type Size struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Extra is an optional add-on; several may be chosen at once.
type Extra struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MenuItem represents a catalog entry
type MenuItem struct {
	ID           string          `json:"id" db:"id"`
	CategoryID   string          `json:"category_id" db:"category_id"`
	DisplayID    string          `json:"display_id,omitempty"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description,omitempty" db:"description"`
	Ingredients  string          `json:"ingredients,omitempty" db:"ingredients"`
	Image        string          `json:"image,omitempty" db:"image_url"`
	Price        decimal.Decimal `json:"price" db:"price"`
	ProteinTypes []string        `json:"protein_types,omitempty" db:"protein_types"`
	Sizes        []Size          `json:"sizes,omitempty"`
	Extras       []Extra         `json:"extras,omitempty"`
	IsAvailable  bool            `json:"is_available" db:"is_available"`
}

// FindSize returns the size with the given id
func (m *MenuItem) FindSize(id string) (Size, bool) {
	for _, s := range m.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return Size{}, false
}

// FindExtra returns the extra with the given id
func (m *MenuItem) FindExtra(id string) (Extra, bool) {
	for _, e := range m.Extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

// HasProtein reports whether protein is one of the item's protein labels
func (m *MenuItem) HasProtein(protein string) bool {
	for _, p := range m.ProteinTypes {
		if p == protein {
			return true
		}
	}
	return false
}
