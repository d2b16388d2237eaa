package storefront

import (
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/catalog"
	"restaurant-storefront/internal/location"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/review"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

type MenuResponse struct {
	Categories []models.Category `json:"categories"`
	Items      []models.MenuItem `json:"items"`
}

// MenuItemResponse is one item with its customer reviews
type MenuItemResponse struct {
	Item    models.MenuItem `json:"item"`
	Reviews review.Summary  `json:"reviews"`
}

type ReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type RestaurantResponse struct {
	IsOpen        bool                  `json:"is_open"`
	Branches      []string              `json:"branches"`
	DeliveryTiers []models.DeliveryTier `json:"delivery_tiers"`
}

type UpdateLineRequest struct {
	Key   string `json:"key"`
	Delta int    `json:"delta"`
}

type OrderTypeRequest struct {
	OrderType string `json:"order_type"`
}

type BranchRequest struct {
	Branch string `json:"branch"`
}

type TierRequest struct {
	TierID string `json:"tier_id"`
}

// LocationRequest carries what the device reported: coordinates or an error
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (r LocationRequest) service() location.Service {
	if r.Error != "" || r.Latitude == nil || r.Longitude == nil {
		return location.Reported{Err: r.Error}
	}
	return location.Reported{Coords: &location.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}}
}

type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type OrdersResponse struct {
	Orders []models.OrderPayload `json:"orders"`
	Count  int                   `json:"count"`
}

type AuditResponse struct {
	Entries []catalog.AuditEntry `json:"entries"`
}
