package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

func TestValidate(t *testing.T) {
	tier := &models.DeliveryTier{ID: "medium", Label: "3-6 km", Fee: decimal.NewFromInt(7)}
	full := models.CustomerDetails{Name: "Sara", Phone: "0500000000", Location: "https://www.google.com/maps?q=24.7,46.6"}

	tests := []struct {
		name      string
		orderType models.OrderType
		customer  models.CustomerDetails
		tier      *models.DeliveryTier
		want      Violation
	}{
		{name: "valid delivery", orderType: models.Delivery, customer: full, tier: tier},
		{name: "valid pickup", orderType: models.Pickup, customer: models.CustomerDetails{Name: "Sara", Phone: "0500000000"}},
		{
			name:      "blank name wins over everything",
			orderType: models.Delivery,
			customer:  models.CustomerDetails{Name: "   "},
			want:      MissingName,
		},
		{
			name:      "missing phone",
			orderType: models.Pickup,
			customer:  models.CustomerDetails{Name: "Sara", Phone: " \t"},
			want:      MissingPhone,
		},
		{
			name:      "delivery without tier",
			orderType: models.Delivery,
			customer:  full,
			want:      MissingDistance,
		},
		{
			name:      "delivery without tier or location reports distance",
			orderType: models.Delivery,
			customer:  models.CustomerDetails{Name: "Sara", Phone: "0500000000"},
			want:      MissingDistance,
		},
		{
			name:      "delivery with tier but blank location",
			orderType: models.Delivery,
			customer:  models.CustomerDetails{Name: "Sara", Phone: "0500000000", Location: "  "},
			tier:      tier,
			want:      MissingLocation,
		},
		{
			name:      "pickup ignores tier and location",
			orderType: models.Pickup,
			customer:  models.CustomerDetails{Name: "Sara", Phone: "0500000000"},
		},
		{
			name:      "unknown order type",
			orderType: models.OrderType("dine_in"),
			customer:  models.CustomerDetails{Name: "Sara", Phone: "0500000000"},
			want:      InvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.orderType, tt.customer, tt.tier)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if vErr.Violation != tt.want {
				t.Errorf("violation = %s, want %s", vErr.Violation, tt.want)
			}
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("error does not wrap ErrValidation")
			}
		})
	}
}
