package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/events"
	"github.com/chic-classics/checkout-service/internal/gateway"
	"github.com/chic-classics/checkout-service/internal/handlers"
	"github.com/chic-classics/checkout-service/internal/mail"
	"github.com/chic-classics/checkout-service/internal/repository"
	"github.com/chic-classics/checkout-service/internal/server"
	"github.com/chic-classics/checkout-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting checkout-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)
	orderCache := repository.NewRedisOrderCache(cfg.Redis, logger)

	paymentGateway := gateway.NewStripeGateway(cfg.Stripe, logger)

	mailer, err := mail.NewSMTPMailer(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("Failed to create mailer", zap.Error(err))
	}
	notifier := service.NewNotifier(mailer, cfg.Shop, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	checkoutService := service.NewCheckoutService(
		paymentGateway,
		orderRepo,
		orderCache,
		eventPublisher,
		notifier,
		logger,
	)

	h := handlers.NewHandlers(checkoutService, cfg, logger, []handlers.ReadyCheck{
		{Name: "postgres", Check: db.PingContext},
		{Name: "redis", Check: orderCache.Ping},
	})

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}
