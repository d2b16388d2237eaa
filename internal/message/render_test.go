package message

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
)

func endToEndPayload() *models.OrderPayload {
	large := &models.Size{ID: "l", Name: "Large", Price: decimal.NewFromInt(10)}
	return &models.OrderPayload{
		OrderType: models.Delivery,
		Customer: models.CustomerDetails{
			Name:     "Sara",
			Phone:    "0500000000",
			Location: "https://www.google.com/maps?q=24.7,46.6",
			Branch:   "Olaya",
		},
		Items: []models.CartLine{{
			Key:        "1-l-none--",
			ItemID:     "1",
			Name:       "Grilled Chicken",
			Size:       large,
			Quantity:   2,
			UnitPrice:  decimal.NewFromInt(40),
			TotalPrice: decimal.NewFromInt(80),
		}},
		Subtotal:    decimal.NewFromInt(80),
		DeliveryFee: decimal.NewFromInt(7),
		Total:       decimal.NewFromInt(87),
	}
}

func TestRenderEndToEnd(t *testing.T) {
	tpl := "---\ntotal={total} subtotal={subtotal} fee={deliveryFee}\n{items}"
	got := Render(tpl, endToEndPayload(), "Olaya")

	want := "---\ntotal=87 subtotal=80 fee=7\n- *2x Grilled Chicken* (Large) = 80 SAR"
	if got != want {
		t.Fatalf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderTokenTwice(t *testing.T) {
	got := Render("--- {total} / {total}", endToEndPayload(), "")
	if got != "--- 87 / 87" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderDoesNotRescanValues(t *testing.T) {
	p := endToEndPayload()
	p.Customer.Name = "{total}"
	p.Customer.Notes = "{customerName}"

	got := Render("--- {customerName}|{customerNotes}|{total}", p, "")
	if got != "--- {total}|{customerName}|87" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderUnknownAndBrokenTokens(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{name: "unknown token", tpl: "--- {coupon} {total}", want: "--- {coupon} 87"},
		{name: "unterminated", tpl: "--- {total", want: "--- {total"},
		{name: "nested open brace", tpl: "--- {x{total}", want: "--- {x87"},
		{name: "empty braces", tpl: "--- {}", want: "--- {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tpl, endToEndPayload(), "Olaya"); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFallbackTemplate(t *testing.T) {
	got := Render("Order {total}", endToEndPayload(), "Olaya")

	if strings.Contains(got, "Order 87") {
		t.Fatal("template without delimiter was used")
	}
	for _, want := range []string{"*Subtotal: 80 SAR*", "*Total: 87 SAR*", "Branch: Olaya", "Order type: Home delivery"} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback output missing %q", want)
		}
	}
}

func TestRenderCustomerFallbacks(t *testing.T) {
	tpl := "---{customerName}|{customerLocation}|{customerNotes}|{orderType}"

	tests := []struct {
		name   string
		mutate func(p *models.OrderPayload)
		want   string
	}{
		{
			name:   "delivery with details",
			mutate: func(p *models.OrderPayload) { p.Customer.Notes = "ring twice" },
			want:   "---Sara|https://www.google.com/maps?q=24.7,46.6|ring twice|Home delivery",
		},
		{
			name: "delivery without location",
			mutate: func(p *models.OrderPayload) {
				p.Customer.Name = ""
				p.Customer.Location = ""
			},
			want: "---Valued customer|Not specified|None|Home delivery",
		},
		{
			name: "pickup ignores location",
			mutate: func(p *models.OrderPayload) {
				p.OrderType = models.Pickup
			},
			want: "---Sara|Customer will pick up from the branch|None|Pickup from branch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := endToEndPayload()
			tt.mutate(p)
			if got := Render(tpl, p, ""); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderItemChoicesAndNotes(t *testing.T) {
	p := endToEndPayload()
	p.Items[0].Protein = "Chicken"
	p.Items[0].Extras = []models.Extra{{ID: "c", Name: "Cheese"}, {ID: "g", Name: "Garlic"}}
	p.Items[0].Notes = "no onion"
	p.Items = append(p.Items, models.CartLine{Name: "Water", Quantity: 1, TotalPrice: decimal.RequireFromString("2.5")})

	got := Render("---\n{items}", p, "")
	want := "---\n- *2x Grilled Chicken* (Chicken - Large - Cheese - Garlic)\n   Note: no onion = 80 SAR\n- *1x Water* = 2.5 SAR"
	if got != want {
		t.Fatalf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncode(t *testing.T) {
	text := "Total: 87 SAR\n*2x Grilled Chicken* & more?"
	encoded := Encode(text)

	if strings.Contains(encoded, "+") || strings.Contains(encoded, " ") {
		t.Fatalf("Encode() = %q contains raw space or plus", encoded)
	}
	if !strings.Contains(encoded, "87%20SAR") {
		t.Errorf("Encode() = %q, want spaces as %%20", encoded)
	}
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("QueryUnescape() error = %v", err)
	}
	if decoded != text {
		t.Errorf("decoded = %q, want %q", decoded, text)
	}
}

func TestContactForAndLink(t *testing.T) {
	cfg := &models.RestaurantConfig{
		DefaultContactID: "966500000000",
		Branches: []models.Branch{
			{Name: "Olaya", ContactID: "966511111111"},
			{Name: "Tuwaiq"},
		},
	}

	tests := []struct {
		branch string
		want   string
	}{
		{branch: "Olaya", want: "966511111111"},
		{branch: "Tuwaiq", want: "966500000000"},
		{branch: "Unknown", want: "966500000000"},
	}
	for _, tt := range tests {
		if got := ContactFor(cfg, tt.branch); got != tt.want {
			t.Errorf("ContactFor(%q) = %q, want %q", tt.branch, got, tt.want)
		}
	}

	if got := Link("966511111111", "Hi%20there"); got != "https://wa.me/966511111111?text=Hi%20there" {
		t.Errorf("Link() = %q", got)
	}
}

func TestBuild(t *testing.T) {
	cfg := &models.RestaurantConfig{
		DefaultContactID: "966500000000",
		MessageTemplate:  DefaultTemplate,
		Branches:         []models.Branch{{Name: "Olaya", ContactID: "966511111111"}},
	}

	out := Build(cfg, endToEndPayload())
	if out.ContactID != "966511111111" {
		t.Errorf("contact = %q", out.ContactID)
	}
	if !strings.HasPrefix(out.URL, "https://wa.me/966511111111?text=") {
		t.Errorf("url = %q", out.URL)
	}
	if !strings.Contains(out.Text, "*Grand total: 87 SAR*") {
		t.Errorf("text missing total:\n%s", out.Text)
	}
	if out.Encoded != Encode(out.Text) {
		t.Error("encoded text does not match rendered text")
	}
}
