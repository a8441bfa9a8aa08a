package repository

import (
	"context"

	"github.com/chic-classics/checkout-service/internal/models"
)

// OrderRepository persists checkout orders. Orders are written once; there
// is no update or delete path in this service.
type OrderRepository interface {
	// Create inserts a fully-built order record.
	Create(ctx context.Context, order *models.Order) error

	// GetByID retrieves an order by its identifier. Returns
	// models.ErrNotFound when no such order exists.
	GetByID(ctx context.Context, id string) (*models.Order, error)

	// GetByUserID retrieves a page of a user's orders, newest first,
	// along with the user's total order count.
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error)
}

// OrderCache defines caching operations for orders. Implementations are
// best-effort: callers log failures and continue.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	GetByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	SetByUserID(ctx context.Context, userID string, orders []*models.Order) error
	InvalidateByUserID(ctx context.Context, userID string) error
}
