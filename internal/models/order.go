package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// OrderStatusPending is the only status this service writes: orders are
// created once, immediately after payment session creation, and never
// updated here. Downstream systems own later transitions.
const OrderStatusPending OrderStatus = "pending"

// CartItem is one purchasable line supplied by the caller. Price and
// quantity are taken as-is; nothing here rejects zero or negative values.
type CartItem struct {
	Name     string          `json:"name"`
	Variant  string          `json:"variant,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// DefaultVariant is used for labels when the caller supplies no variant.
const DefaultVariant = "Standard"

// Label returns the product label sent to the payment gateway and printed
// in notification emails, e.g. "Dress (Red)" or "Dress (Standard)".
func (i CartItem) Label() string {
	variant := i.Variant
	if variant == "" {
		variant = DefaultVariant
	}
	return i.Name + " (" + variant + ")"
}

// UnitAmount returns the item price in the smallest currency unit,
// rounded half away from zero: 49.99 becomes 4999.
func (i CartItem) UnitAmount() int64 {
	return i.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// LineTotal returns price multiplied by quantity for this item.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// CustomerInfo is the correspondence record supplied by the caller. The
// email is forwarded to the payment gateway and the confirmation send
// without validation.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is the persisted representation of a purchase attempt, linked to a
// payment gateway session. Written once per checkout.
type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Status           OrderStatus     `json:"status"`
	Items            []CartItem      `json:"items"`
	Total            decimal.Decimal `json:"total"`
	CustomerInfo     CustomerInfo    `json:"customer_info"`
	PaymentSessionID string          `json:"payment_session_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ComputeTotal sums price multiplied by quantity over all items. This runs
// in a separate code path from the per-line cent amounts sent to the
// gateway; the two are intentionally not cross-checked.
func ComputeTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CheckoutSession is the slice of the gateway's session object this
// service reads back.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutRequest is the body of POST /checkout. Field names match the
// storefront client.
type CheckoutRequest struct {
	Items        []CartItem   `json:"items"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}
