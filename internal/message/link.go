package message

import "restaurant-storefront/internal/models"

const linkBase = "https://wa.me/"

// Outbound is what the messaging endpoint needs to open a prefilled chat
type Outbound struct {
	ContactID string `json:"contact_id"`
	Text      string `json:"text"`
	Encoded   string `json:"encoded_text"`
	URL       string `json:"url"`
}

// Link builds the chat URL for an already encoded message
func Link(contactID, encoded string) string {
	return linkBase + contactID + "?text=" + encoded
}

// ContactFor resolves the branch contact, falling back to the default contact
func ContactFor(cfg *models.RestaurantConfig, branch string) string {
	if b, ok := cfg.FindBranch(branch); ok && b.ContactID != "" {
		return b.ContactID
	}
	return cfg.DefaultContactID
}

// Build renders, encodes and addresses the message for a submitted order
func Build(cfg *models.RestaurantConfig, p *models.OrderPayload) Outbound {
	text := Render(cfg.MessageTemplate, p, p.Customer.Branch)
	encoded := Encode(text)
	contact := ContactFor(cfg, p.Customer.Branch)
	return Outbound{
		ContactID: contact,
		Text:      text,
		Encoded:   encoded,
		URL:       Link(contact, encoded),
	}
}
