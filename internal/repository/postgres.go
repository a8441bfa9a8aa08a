package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/models"
)

// Ensure PostgresOrderRepository implements OrderRepository
var _ OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
// Items and customer info are stored as JSONB; the total as numeric.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new order record.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "marshal items")
	}

	customerJSON, err := json.Marshal(order.CustomerInfo)
	if err != nil {
		return errors.Wrap(err, "marshal customer info")
	}

	query := `
		INSERT INTO orders (
			id, user_id, status, items, customer_info,
			total, payment_session_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		itemsJSON,
		customerJSON,
		order.Total,
		order.PaymentSessionID,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert order",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.Error(err),
		)
		return errors.Wrap(err, "insert order")
	}

	r.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return nil
}

// GetByID retrieves an order by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, items, customer_info,
		       total, payment_session_id, created_at
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch order",
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "fetch order")
	}

	return order, nil
}

// GetByUserID retrieves a page of a user's orders, newest first.
func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}

	query := `
		SELECT id, user_id, status, items, customer_info,
		       total, payment_session_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scan order")
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "iterate orders")
	}

	return orders, total, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON, customerJSON []byte

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&itemsJSON,
		&customerJSON,
		&order.Total,
		&order.PaymentSessionID,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customerJSON, &order.CustomerInfo); err != nil {
		return nil, err
	}

	return &order, nil
}
