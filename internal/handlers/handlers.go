package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/models"
	"github.com/chic-classics/checkout-service/internal/service"
)

// ReadyCheck is one named dependency probe run by the readiness endpoint.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers holds all HTTP handlers for the checkout service.
type Handlers struct {
	checkout    *service.CheckoutService
	config      *config.Config
	logger      *zap.Logger
	readyChecks []ReadyCheck
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	checkout *service.CheckoutService,
	cfg *config.Config,
	logger *zap.Logger,
	readyChecks []ReadyCheck,
) *Handlers {
	return &Handlers{
		checkout:    checkout,
		config:      cfg,
		logger:      logger,
		readyChecks: readyChecks,
	}
}

// handleError maps service errors for the read endpoints. The checkout
// endpoint has its own flat 400 contract and does not use this.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
