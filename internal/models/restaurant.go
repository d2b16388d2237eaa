package models

import "github.com/shopspring/decimal"

// Branch is a pickup/dispatch location with its own outbound contact
type Branch struct {
	Name      string `json:"name" yaml:"name"`
	ContactID string `json:"contact_id" yaml:"contact_id"`
}

// DeliveryTier is a staff-defined delivery fee bracket
type DeliveryTier struct {
	ID    string          `json:"id" yaml:"id"`
	Label string          `json:"label" yaml:"label"`
	Fee   decimal.Decimal `json:"fee" yaml:"fee"`
}

// RestaurantConfig holds the operating state staff can change
type RestaurantConfig struct {
	IsOpen           bool           `json:"is_open"`
	Branches         []Branch       `json:"branches"`
	DefaultContactID string         `json:"default_contact_id"`
	MessageTemplate  string         `json:"message_template"`
	DeliveryTiers    []DeliveryTier `json:"delivery_tiers"`
}

// FindBranch returns the branch with the given name
func (c *RestaurantConfig) FindBranch(name string) (Branch, bool) {
	for _, b := range c.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return Branch{}, false
}

// FindTier returns the delivery tier with the given id
func (c *RestaurantConfig) FindTier(id string) (DeliveryTier, bool) {
	for _, t := range c.DeliveryTiers {
		if t.ID == id {
			return t, true
		}
	}
	return DeliveryTier{}, false
}

// Clone returns a copy whose slices can be modified independently
func (c RestaurantConfig) Clone() RestaurantConfig {
	out := c
	out.Branches = append([]Branch(nil), c.Branches...)
	out.DeliveryTiers = append([]DeliveryTier(nil), c.DeliveryTiers...)
	return out
}
