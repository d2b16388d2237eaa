package models

import "github.com/shopspring/decimal"

// CartLine is one mergeable entry of the order in progress.
// TotalPrice is always UnitPrice * Quantity.
type CartLine struct {
	Key         string          `json:"cart_id"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Ingredients string          `json:"ingredients,omitempty"`
	Protein     string          `json:"protein,omitempty"`
	Size        *Size           `json:"size,omitempty"`
	Extras      []Extra         `json:"extras"`
	Notes       string          `json:"notes,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Clone returns a deep copy that shares no memory with l.
func (l CartLine) Clone() CartLine {
	c := l
	if l.Size != nil {
		size := *l.Size
		c.Size = &size
	}
	c.Extras = append([]Extra(nil), l.Extras...)
	return c
}

// Choices lists the chosen protein, size and extra labels in display order.
func (l CartLine) Choices() []string {
	var choices []string
	if l.Protein != "" {
		choices = append(choices, l.Protein)
	}
	if l.Size != nil {
		choices = append(choices, l.Size.Name)
	}
	for _, e := range l.Extras {
		choices = append(choices, e.Name)
	}
	return choices
}
