package order

import (
	"fmt"
	"strings"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/models"
)

// Violation identifies which checkout rule failed
type Violation string

const (
	MissingName     Violation = "missing_name"
	MissingPhone    Violation = "missing_phone"
	MissingDistance Violation = "missing_distance"
	MissingLocation Violation = "missing_location"
	InvalidType     Violation = "invalid_order_type"
)

type ValidationError struct {
	Violation Violation
	Field     string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return apperr.ErrValidation
}

// Validate checks the checkout form, stopping at the first failed rule.
// A nil tier means no delivery distance has been chosen yet.
func Validate(orderType models.OrderType, customer models.CustomerDetails, tier *models.DeliveryTier) error {
	if err := validateCustomerName(customer.Name); err != nil {
		return err
	}

	if err := validateCustomerPhone(customer.Phone); err != nil {
		return err
	}

	switch orderType {
	case models.Pickup:
		return nil
	case models.Delivery:
		return validateDeliveryConditions(customer, tier)
	default:
		return &ValidationError{
			Violation: InvalidType,
			Field:     "order_type",
			Message:   "order type must be delivery or pickup",
		}
	}
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{
			Violation: MissingName,
			Field:     "name",
			Message:   "please enter your name",
		}
	}
	return nil
}

func validateCustomerPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return &ValidationError{
			Violation: MissingPhone,
			Field:     "phone",
			Message:   "please enter your mobile number",
		}
	}
	return nil
}

func validateDeliveryConditions(customer models.CustomerDetails, tier *models.DeliveryTier) error {
	if tier == nil {
		return &ValidationError{
			Violation: MissingDistance,
			Field:     "delivery_tier",
			Message:   "please choose a delivery distance to set the price",
		}
	}

	if strings.TrimSpace(customer.Location) == "" {
		return &ValidationError{
			Violation: MissingLocation,
			Field:     "location",
			Message:   "enter an address or share your location to complete a delivery order",
		}
	}
	return nil
}
