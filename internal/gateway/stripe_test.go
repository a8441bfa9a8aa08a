package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/models"
)

func TestBuildParams(t *testing.T) {
	g := NewStripeGateway(config.StripeConfig{SecretKey: "sk_test", Currency: "usd"}, zap.NewNop())

	req := &SessionRequest{
		Items: []models.CartItem{
			{Name: "Dress", Variant: "Red", Price: decimal.RequireFromString("49.99"), Quantity: 2},
			{Name: "Scarf", Price: decimal.RequireFromString("12.53"), Quantity: 1},
		},
		SuccessURL:    "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://shop.example.com/cart",
		CustomerEmail: "jane@example.com",
	}

	params := g.buildParams(context.Background(), req)

	if got := stripe.StringValue(params.Mode); got != string(stripe.CheckoutSessionModePayment) {
		t.Errorf("Mode = %q, want payment", got)
	}
	if len(params.PaymentMethodTypes) != 1 || stripe.StringValue(params.PaymentMethodTypes[0]) != "card" {
		t.Errorf("PaymentMethodTypes = %v, want [card]", params.PaymentMethodTypes)
	}
	if got := stripe.StringValue(params.SuccessURL); got != req.SuccessURL {
		t.Errorf("SuccessURL = %q", got)
	}
	if got := stripe.StringValue(params.CancelURL); got != req.CancelURL {
		t.Errorf("CancelURL = %q", got)
	}
	if got := stripe.StringValue(params.CustomerEmail); got != "jane@example.com" {
		t.Errorf("CustomerEmail = %q", got)
	}

	if len(params.LineItems) != 2 {
		t.Fatalf("LineItems = %d, want 2", len(params.LineItems))
	}

	first := params.LineItems[0]
	if got := stripe.Int64Value(first.PriceData.UnitAmount); got != 4999 {
		t.Errorf("first UnitAmount = %d, want 4999", got)
	}
	if got := stripe.StringValue(first.PriceData.ProductData.Name); got != "Dress (Red)" {
		t.Errorf("first Name = %q, want Dress (Red)", got)
	}
	if got := stripe.Int64Value(first.Quantity); got != 2 {
		t.Errorf("first Quantity = %d, want 2", got)
	}
	if got := stripe.StringValue(first.PriceData.Currency); got != "usd" {
		t.Errorf("Currency = %q, want usd", got)
	}

	second := params.LineItems[1]
	if got := stripe.Int64Value(second.PriceData.UnitAmount); got != 1253 {
		t.Errorf("second UnitAmount = %d, want 1253", got)
	}
	if got := stripe.StringValue(second.PriceData.ProductData.Name); got != "Scarf (Standard)" {
		t.Errorf("second Name = %q, want Scarf (Standard)", got)
	}
}
