package repository

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chic-classics/checkout-service/internal/models"
)

type fakeRow struct {
	order *models.Order
	err   error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}

	itemsJSON, _ := json.Marshal(r.order.Items)
	customerJSON, _ := json.Marshal(r.order.CustomerInfo)

	*(dest[0].(*string)) = r.order.ID
	*(dest[1].(*string)) = r.order.UserID
	*(dest[2].(*models.OrderStatus)) = r.order.Status
	*(dest[3].(*[]byte)) = itemsJSON
	*(dest[4].(*[]byte)) = customerJSON
	*(dest[5].(*decimal.Decimal)) = r.order.Total
	*(dest[6].(*string)) = r.order.PaymentSessionID
	*(dest[7].(*time.Time)) = r.order.CreatedAt
	return nil
}

func TestScanOrder(t *testing.T) {
	want := &models.Order{
		ID:     "ord_1",
		UserID: "user_1",
		Status: models.OrderStatusPending,
		Items: []models.CartItem{
			{Name: "Dress", Variant: "Red", Price: decimal.RequireFromString("49.99"), Quantity: 2},
		},
		Total: decimal.RequireFromString("99.98"),
		CustomerInfo: models.CustomerInfo{
			Name:  "Jane",
			Email: "jane@example.com",
		},
		PaymentSessionID: "cs_123",
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	got, err := scanOrder(fakeRow{order: want})
	if err != nil {
		t.Fatalf("scanOrder() error = %v", err)
	}

	if got.ID != want.ID || got.UserID != want.UserID || got.Status != want.Status {
		t.Errorf("scanned order = %+v, want %+v", got, want)
	}
	if !got.Total.Equal(want.Total) {
		t.Errorf("Total = %s, want %s", got.Total, want.Total)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Dress" || got.Items[0].Quantity != 2 {
		t.Errorf("Items = %+v, want one Dress x2", got.Items)
	}
	if !got.Items[0].Price.Equal(want.Items[0].Price) {
		t.Errorf("item Price = %s, want %s", got.Items[0].Price, want.Items[0].Price)
	}
	if got.CustomerInfo.Email != "jane@example.com" {
		t.Errorf("CustomerInfo = %+v", got.CustomerInfo)
	}
	if got.PaymentSessionID != "cs_123" {
		t.Errorf("PaymentSessionID = %q", got.PaymentSessionID)
	}
}

func TestScanOrderPropagatesError(t *testing.T) {
	if _, err := scanOrder(fakeRow{err: sql.ErrNoRows}); err != sql.ErrNoRows {
		t.Errorf("scanOrder() error = %v, want sql.ErrNoRows", err)
	}
}

func TestPostgresOrderRepositoryIntegration(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestRedisOrderCacheIntegration(t *testing.T) {
	t.Skip("Integration test - requires Redis")
}
