package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/handlers"
	"github.com/chic-classics/checkout-service/internal/middleware"
)

// Server assembles the router and owns the HTTP listener.
type Server struct {
	httpServer *http.Server
}

// New builds the router: operational endpoints are open; the checkout and
// order routes sit behind the upstream-identity auth middleware.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Metrics(),
	)

	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
	router.GET("/version", h.Version)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := router.Group("/", middleware.RequireUser())
	{
		authed.POST("/checkout", h.Checkout)
		authed.GET("/orders", h.ListOrders)
		authed.GET("/orders/:id", h.GetOrder)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
