package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/middleware"
	"github.com/chic-classics/checkout-service/internal/models"
)

// OrderEventPublisher publishes order lifecycle events. Publishing is
// best-effort on the checkout path: a failure is logged and never fails
// the request.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	Close() error
}

// Ensure KafkaPublisher implements OrderEventPublisher
var _ OrderEventPublisher = (*KafkaPublisher)(nil)

// EventType represents the type of order event.
type EventType string

const EventTypeOrderCreated EventType = "order.created"

// OrderEvent is the envelope written to the orders topic.
type OrderEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order created event carrying the full
// order as payload.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := &OrderEvent{
		ID:            "evt_" + uuid.NewString(),
		Type:          EventTypeOrderCreated,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.RequestIDFromContext(ctx),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("order_id", event.OrderID),
	)
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// MockEventPublisher is a mock implementation for testing.
type MockEventPublisher struct {
	Events []*OrderEvent
	Err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make([]*OrderEvent, 0)}
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, &OrderEvent{
		Type:    EventTypeOrderCreated,
		OrderID: order.ID,
		UserID:  order.UserID,
	})
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }
