package cart

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/pricing"
)

// MaxQuantity caps a single line's quantity
const MaxQuantity = 999

// Cart is an immutable list of cart lines. Every reducer returns a new Cart
// and leaves the receiver untouched.
type Cart struct {
	lines []models.CartLine
}

// New returns an empty cart
func New() Cart {
	return Cart{}
}

// IdentityKey derives the merge key of a configured item
func IdentityKey(itemID string, size *models.Size, protein string, extras []models.Extra, notes string) string {
	sizeID := "none"
	if size != nil {
		sizeID = size.ID
	}
	if protein == "" {
		protein = "none"
	}

	ids := make([]string, 0, len(extras))
	for _, e := range extras {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)

	return strings.Join([]string{itemID, sizeID, protein, strings.Join(ids, ","), notes}, "-")
}

// Add places one line per chosen size into the cart, or a single size-less
// line when no size is chosen. Protein and notes apply to every fanned-out
// line. Lines whose identity key already exists are merged.
func (c Cart) Add(item *models.MenuItem, sizes []models.Size, extras []models.Extra, quantity int, notes, protein string) Cart {
	quantity = clampQuantity(quantity)

	next := c.clone()
	if len(sizes) == 0 {
		next.lines = next.merge(newLine(item, nil, extras, quantity, notes, protein))
		return next
	}
	for i := range sizes {
		size := sizes[i]
		next.lines = next.merge(newLine(item, &size, extras, quantity, notes, protein))
	}
	return next
}

// Remove drops the line with the given key. Unknown keys are ignored.
func (c Cart) Remove(key string) Cart {
	next := Cart{lines: make([]models.CartLine, 0, len(c.lines))}
	for _, l := range c.lines {
		if l.Key != key {
			next.lines = append(next.lines, l.Clone())
		}
	}
	return next
}

// UpdateQuantity adjusts a line's quantity by delta, staying within 1..MaxQuantity.
func (c Cart) UpdateQuantity(key string, delta int) Cart {
	if delta > MaxQuantity {
		delta = MaxQuantity
	} else if delta < -MaxQuantity {
		delta = -MaxQuantity
	}

	next := c.clone()
	for i := range next.lines {
		if next.lines[i].Key != key {
			continue
		}
		q := clampQuantity(next.lines[i].Quantity + delta)
		next.lines[i].Quantity = q
		next.lines[i].TotalPrice = pricing.LineTotal(next.lines[i].UnitPrice, q)
	}
	return next
}

// Clear returns an empty cart
func (c Cart) Clear() Cart {
	return Cart{}
}

// Subtotal sums the line totals
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.TotalPrice)
	}
	return sum
}

// ItemCount sums the quantities of all lines
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a deep copy of the lines in insertion order
func (c Cart) Lines() []models.CartLine {
	return c.clone().lines
}

// Find returns the line with the given key
func (c Cart) Find(key string) (models.CartLine, bool) {
	for _, l := range c.lines {
		if l.Key == key {
			return l.Clone(), true
		}
	}
	return models.CartLine{}, false
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c Cart) clone() Cart {
	lines := make([]models.CartLine, len(c.lines))
	for i, l := range c.lines {
		lines[i] = l.Clone()
	}
	return Cart{lines: lines}
}

func (c Cart) merge(line models.CartLine) []models.CartLine {
	for i := range c.lines {
		if c.lines[i].Key == line.Key {
			c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity + line.Quantity)
			c.lines[i].TotalPrice = pricing.LineTotal(c.lines[i].UnitPrice, c.lines[i].Quantity)
			return c.lines
		}
	}
	return append(c.lines, line)
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuantity:
		return MaxQuantity
	default:
		return q
	}
}

func newLine(item *models.MenuItem, size *models.Size, extras []models.Extra, quantity int, notes, protein string) models.CartLine {
	unit, total := pricing.Price(item, size, extras, quantity)
	line := models.CartLine{
		Key:         IdentityKey(item.ID, size, protein, extras, notes),
		ItemID:      item.ID,
		Name:        item.Name,
		Image:       item.Image,
		Ingredients: item.Ingredients,
		Protein:     protein,
		Extras:      append([]models.Extra(nil), extras...),
		Notes:       notes,
		Quantity:    quantity,
		UnitPrice:   unit,
		TotalPrice:  total,
	}
	if size != nil {
		s := *size
		line.Size = &s
	}
	return line
}
