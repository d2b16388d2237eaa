package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"restaurant-storefront/internal/apperr"
)

// FailureMessage is shown when coordinates cannot be obtained
const FailureMessage = "Please enable location services (GPS) or type your address manually"

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Service yields the customer's coordinates or fails
type Service interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// MapsURL builds the location reference stored on the checkout form
func MapsURL(c Coordinates) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Validate rejects coordinates outside the valid ranges
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("lat %v lon %v: %w", c.Latitude, c.Longitude, ErrInvalidCoordinates)
	}
	return nil
}

// Resolve asks the service for coordinates and returns the maps URL.
// Failures are classified as collaborator errors.
func Resolve(ctx context.Context, svc Service) (string, error) {
	coords, err := svc.Locate(ctx)
	if err != nil {
		return "", fmt.Errorf("locate: %w: %w", apperr.ErrCollaborator, err)
	}
	if err := coords.Validate(); err != nil {
		return "", fmt.Errorf("locate: %w: %w", apperr.ErrCollaborator, err)
	}
	return MapsURL(coords), nil
}

// Reported is a Service backed by coordinates the client already obtained
type Reported struct {
	Coords *Coordinates
	Err    string
}

func (r Reported) Locate(ctx context.Context) (Coordinates, error) {
	if r.Err != "" {
		return Coordinates{}, errors.New(r.Err)
	}
	if r.Coords == nil {
		return Coordinates{}, errors.New("no coordinates reported")
	}
	return *r.Coords, nil
}
