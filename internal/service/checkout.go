package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/events"
	"github.com/chic-classics/checkout-service/internal/gateway"
	"github.com/chic-classics/checkout-service/internal/models"
	"github.com/chic-classics/checkout-service/internal/repository"
)

// CheckoutService orchestrates the checkout flow: payment session creation,
// order persistence, and best-effort side effects (cache, event stream,
// notification emails).
type CheckoutService struct {
	gateway   gateway.PaymentGateway
	orders    repository.OrderRepository
	cache     repository.OrderCache
	publisher events.OrderEventPublisher
	notifier  *Notifier
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	gw gateway.PaymentGateway,
	orders repository.OrderRepository,
	cache repository.OrderCache,
	publisher events.OrderEventPublisher,
	notifier *Notifier,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		gateway:   gw,
		orders:    orders,
		cache:     cache,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// CheckoutInput is one checkout submission: the caller's identity from the
// auth middleware, the cart and customer record from the request body, and
// the storefront origin used to build redirect and dashboard URLs.
type CheckoutInput struct {
	UserID       string
	Items        []models.CartItem
	CustomerInfo models.CustomerInfo
	Origin       string
}

// Checkout runs a single checkout attempt. The gateway call and the order
// insert are the critical path: either failing aborts the request with no
// retry. Everything after the insert is best-effort and cannot fail the
// request. Returns the created gateway session.
func (s *CheckoutService) Checkout(ctx context.Context, in *CheckoutInput) (*models.CheckoutSession, error) {
	s.logger.Info("Checkout started",
		zap.String("user_id", in.UserID),
		zap.Int("item_count", len(in.Items)),
	)

	sess, err := s.gateway.CreateSession(ctx, &gateway.SessionRequest{
		Items:         in.Items,
		SuccessURL:    in.Origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     in.Origin + "/cart",
		CustomerEmail: in.CustomerInfo.Email,
	})
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:               "ord_" + uuid.NewString(),
		UserID:           in.UserID,
		Status:           models.OrderStatusPending,
		Items:            in.Items,
		Total:            models.ComputeTotal(in.Items),
		CustomerInfo:     in.CustomerInfo,
		PaymentSessionID: sess.ID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// The gateway session already exists and is not rolled back;
		// log its ID so it can be expired by hand.
		s.logger.Error("Order persistence failed, gateway session orphaned",
			zap.String("session_id", sess.ID),
			zap.String("user_id", in.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.cache.Set(ctx, order); err != nil {
		s.logger.Warn("Failed to cache order",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
	if err := s.cache.InvalidateByUserID(ctx, order.UserID); err != nil {
		s.logger.Warn("Failed to invalidate user order cache",
			zap.String("user_id", order.UserID),
			zap.Error(err),
		)
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Error("Failed to publish order created event",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}

	s.notifier.DispatchOrderEmails(order, in.Origin)

	s.logger.Info("Checkout completed",
		zap.String("order_id", order.ID),
		zap.String("session_id", sess.ID),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return sess, nil
}
