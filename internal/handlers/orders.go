package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chic-classics/checkout-service/internal/middleware"
	"github.com/chic-classics/checkout-service/internal/service"
)

// GetOrder handles GET /orders/:id. Orders are scoped to the caller.
func (h *Handlers) GetOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	orderID := c.Param("id")

	order, err := h.checkout.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders.
func (h *Handlers) ListOrders(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	limit := service.DefaultListLimit
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > service.MaxListLimit {
		limit = service.MaxListLimit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o > 0 {
			offset = o
		}
	}

	orders, total, err := h.checkout.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
