package gateway

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/models"
)

// SessionRequest describes one hosted-checkout session to create: one line
// item per cart item, redirect targets derived from the storefront origin,
// and the customer email forwarded for receipt purposes.
type SessionRequest struct {
	Items         []models.CartItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// PaymentGateway creates checkout sessions with the payment processor.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*models.CheckoutSession, error)
}

// Ensure StripeGateway implements PaymentGateway
var _ PaymentGateway = (*StripeGateway)(nil)

// StripeGateway implements PaymentGateway against Stripe's hosted checkout.
// Constructed once at startup and shared read-only across requests.
type StripeGateway struct {
	api      *client.API
	currency string
	logger   *zap.Logger
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		api:      api,
		currency: cfg.Currency,
		logger:   logger,
	}
}

// CreateSession creates a single-payment checkout session. The per-line
// unit amount is the item price in cents; the customer email is passed
// through unvalidated.
func (g *StripeGateway) CreateSession(ctx context.Context, req *SessionRequest) (*models.CheckoutSession, error) {
	sess, err := g.api.CheckoutSessions.New(g.buildParams(ctx, req))
	if err != nil {
		g.logger.Error("Checkout session creation failed",
			zap.Int("line_items", len(req.Items)),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "create checkout session")
	}

	g.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int("line_items", len(req.Items)),
	)

	return &models.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) buildParams(ctx context.Context, req *SessionRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
	}

	for _, item := range req.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(item.UnitAmount()),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Label()),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	return params
}
