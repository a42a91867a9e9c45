package mailer

import (
	"strings"
	"testing"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

func TestRenderOrderConfirmation(t *testing.T) {
	o := &order.Order{
		OrderNumber: "ORD1700000000000",
		Customer:    order.Customer{Name: "Rahim Uddin", Address: "Dhanmondi, Dhaka"},
		Items: []order.Item{
			{ProductName: "Smart Switch", Quantity: 10, UnitPrice: 1200, Engraving: "Bedroom"},
		},
		TotalAmount:   12000,
		PaymentMethod: "cod",
	}

	html, text, err := RenderOrderConfirmation(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"ORD1700000000000", "Rahim Uddin", "Smart Switch", "engraved: Bedroom", "12000 BDT"} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q:\n%s", want, html)
		}
	}
	if !strings.Contains(text, "Smart Switch x10") {
		t.Fatalf("text missing item line:\n%s", text)
	}
}

func TestRenderOrderConfirmationEscapesEngraving(t *testing.T) {
	o := &order.Order{
		OrderNumber: "ORD1",
		Customer:    order.Customer{Name: "X"},
		Items: []order.Item{
			{ProductName: "Smart Switch", Quantity: 10, UnitPrice: 100, Engraving: "<script>alert(1)</script>"},
		},
	}

	html, _, err := RenderOrderConfirmation(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("engraving markup not escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped engraving in:\n%s", html)
	}
}

func TestRenderQuoteReceived(t *testing.T) {
	q := &quote.Quote{
		QuoteNumber:            "QT1700000000000",
		Customer:               order.Customer{Name: "Karim"},
		TotalAmount:            900,
		PhysicalVisitRequested: true,
	}

	html, text, err := RenderQuoteReceived(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "QT1700000000000") || !strings.Contains(html, "site visit") {
		t.Fatalf("unexpected html:\n%s", html)
	}
	if !strings.Contains(text, "site visit") {
		t.Fatalf("unexpected text:\n%s", text)
	}
}
