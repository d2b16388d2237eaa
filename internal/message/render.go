package message

import (
	"fmt"
	"net/url"
	"strings"

	"restaurant-storefront/internal/models"
)

// Render fills the template with values from the payload in a single
// left-to-right pass. Unknown tokens are copied verbatim and substituted
// values are never scanned again.
func Render(template string, p *models.OrderPayload, branch string) string {
	if !strings.Contains(template, Delimiter) {
		template = FallbackTemplate
	}
	values := tokenValues(p, branch)

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}

		// a nested '{' starts a new candidate token
		if inner := strings.IndexByte(rest[1:end], '{'); inner >= 0 {
			b.WriteString(rest[:inner+1])
			rest = rest[inner+1:]
			continue
		}

		token := rest[:end+1]
		if v, ok := values[token]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(token)
		}
		rest = rest[end+1:]
	}
	return b.String()
}

// Encode percent-encodes text for a URL query parameter, spaces as %20
func Encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func tokenValues(p *models.OrderPayload, branch string) map[string]string {
	orderType := pickupLabel
	location := pickupLocation
	if p.OrderType == models.Delivery {
		orderType = deliveryLabel
		location = p.Customer.Location
		if strings.TrimSpace(location) == "" {
			location = missingLocation
		}
	}

	name := p.Customer.Name
	if name == "" {
		name = anonymousName
	}
	notes := p.Customer.Notes
	if notes == "" {
		notes = missingNotes
	}

	return map[string]string{
		"{branch}":           branch,
		"{orderType}":        orderType,
		"{items}":            renderItems(p.Items),
		"{subtotal}":         p.Subtotal.String(),
		"{deliveryFee}":      p.DeliveryFee.String(),
		"{total}":            p.Total.String(),
		"{customerName}":     name,
		"{customerPhone}":    p.Customer.Phone,
		"{customerLocation}": location,
		"{customerNotes}":    notes,
	}
}

func renderItems(lines []models.CartLine) string {
	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		details := fmt.Sprintf("*%dx %s*", l.Quantity, l.Name)
		if choices := l.Choices(); len(choices) > 0 {
			details += " (" + strings.Join(choices, " - ") + ")"
		}
		if l.Notes != "" {
			details += "\n   Note: " + l.Notes
		}
		rendered = append(rendered, fmt.Sprintf("- %s = %s %s", details, l.TotalPrice.String(), currency))
	}
	return strings.Join(rendered, "\n")
}
