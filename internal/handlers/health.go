package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "checkout-service"

var startTime = time.Now()

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// Ready handles GET /ready. It runs each dependency probe with a short
// deadline and reports 503 when any fails.
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true
	for _, rc := range h.readyChecks {
		if err := rc.Check(ctx); err != nil {
			h.logger.Error("Readiness check failed",
				zap.String("check", rc.Name),
				zap.Error(err),
			)
			checks[rc.Name] = err.Error()
			healthy = false
			continue
		}
		checks[rc.Name] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":  readyStatus(healthy),
		"service": serviceName,
		"checks":  checks,
	})
}

// Live handles GET /live
func (h *Handlers) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Version handles GET /version
func (h *Handlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":    serviceName,
		"go_version": runtime.Version(),
		"started_at": startTime.Format(time.RFC3339),
	})
}

func readyStatus(healthy bool) string {
	if healthy {
		return "ready"
	}
	return "not ready"
}
