package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/models"
)

// List page bounds, shared with the HTTP layer so responses echo the
// values actually applied.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// GetOrder retrieves one of the caller's orders, cache first. An order
// belonging to another user is reported as not found rather than
// forbidden, so order IDs don't leak existence.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	if order, err := s.cache.Get(ctx, id); err == nil && order != nil {
		if order.UserID != userID {
			return nil, models.ErrNotFound
		}
		return order, nil
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}

	if err := s.cache.Set(ctx, order); err != nil {
		s.logger.Warn("Failed to cache order",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}

// ListOrders retrieves a page of the caller's orders, newest first. The
// first page is served from cache when available.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if offset == 0 && limit == DefaultListLimit {
		if orders, err := s.cache.GetByUserID(ctx, userID); err == nil && orders != nil {
			return orders, len(orders), nil
		}
	}

	orders, total, err := s.orders.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if offset == 0 && limit == DefaultListLimit {
		if err := s.cache.SetByUserID(ctx, userID, orders); err != nil {
			s.logger.Warn("Failed to cache user orders",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return orders, total, nil
}
