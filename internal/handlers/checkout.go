package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/middleware"
	"github.com/chic-classics/checkout-service/internal/models"
	"github.com/chic-classics/checkout-service/internal/service"
)

// Checkout handles POST /checkout. Any critical-path failure (gateway,
// persistence) responds 400 with the upstream message; the caller cannot
// tell the categories apart from the status alone.
func (h *Handlers) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.checkout.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:       c.GetString(middleware.ContextUserIDKey),
		Items:        req.Items,
		CustomerInfo: req.CustomerInfo,
		Origin:       c.GetHeader("Origin"),
	})
	if err != nil {
		h.logger.Error("Checkout failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}
