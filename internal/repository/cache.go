package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/models"
)

const (
	orderKeyPrefix   = "order:"
	userOrdersPrefix = "user_orders:"
	defaultCacheTTL  = 5 * time.Minute
)

// Ensure RedisOrderCache implements OrderCache
var _ OrderCache = (*RedisOrderCache)(nil)

// RedisOrderCache implements OrderCache using Redis.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisOrderCache creates a new Redis-based order cache.
func NewRedisOrderCache(cfg config.RedisConfig, logger *zap.Logger) *RedisOrderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Ping reports whether the cache backend is reachable.
func (c *RedisOrderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get retrieves an order from cache. A miss returns (nil, nil).
func (c *RedisOrderCache) Get(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.client.Get(ctx, orderKeyPrefix+id).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("order_id", id))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error",
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", zap.String("order_id", id))
	return &order, nil
}

// Set stores an order in cache.
func (c *RedisOrderCache) Set(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, orderKeyPrefix+order.ID, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// GetByUserID retrieves cached orders for a user. A miss returns (nil, nil).
func (c *RedisOrderCache) GetByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	data, err := c.client.Get(ctx, userOrdersPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// SetByUserID caches the first page of a user's orders.
func (c *RedisOrderCache) SetByUserID(ctx context.Context, userID string, orders []*models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, userOrdersPrefix+userID, data, c.ttl).Err()
}

// InvalidateByUserID removes a user's cached order list.
func (c *RedisOrderCache) InvalidateByUserID(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userOrdersPrefix+userID).Err()
}
