package pricing

import (
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
)

// Price computes the unit and line price for an item configuration.
// A nil size contributes nothing; quantities below one are treated as one.
func Price(item *models.MenuItem, size *models.Size, extras []models.Extra, quantity int) (unit, total decimal.Decimal) {
	unit = item.Price
	if size != nil {
		unit = unit.Add(size.Price)
	}
	for _, e := range extras {
		unit = unit.Add(e.Price)
	}
	return unit, LineTotal(unit, quantity)
}

// LineTotal re-derives a line total from a cached unit price
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
