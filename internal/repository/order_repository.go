package repository

import (
	"context"
	"fmt"
	"time"

	"bloomcart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, email, phone, stripe_session_id, total_cents, currency,
		status, is_read, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, email, phone, stripe_session_id, total_cents,
			currency, status, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.Email, order.Phone, order.StripeSessionID, order.TotalCents,
		order.Currency, order.Status, order.IsRead, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, bouquet_id, name, price_cents, quantity, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range items {
		_, err := tx.Exec(ctx, query,
			item.ID, item.OrderID, item.BouquetID, item.Name,
			item.PriceCents, item.Quantity, item.Image,
		)
		if err != nil {
			r.logger.Error().Err(err).
				Str("order_id", item.OrderID.String()).
				Msg("failed to insert order item")
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Email, &o.Phone, &o.StripeSessionID, &o.TotalCents,
		&o.Currency, &o.Status, &o.IsRead, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *orderRepository) collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = $1
	`, orderColumns)

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.ListItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, nil, err
	}

	return &o, items, nil
}

// ListByCreatedRange retrieves orders created in [start, end), newest first.
func (r *orderRepository) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		r.logger.Error().Err(err).
			Time("start", start).
			Time("end", end).
			Msg("failed to query orders by range")
		return nil, fmt.Errorf("failed to query orders by range: %w", err)
	}

	return r.collectOrders(rows)
}

// ListItems retrieves the items of all given orders.
func (r *orderRepository) ListItems(ctx context.Context, orderIDs []uuid.UUID) ([]model.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []model.OrderItem{}, nil
	}

	query := `
		SELECT id, order_id, bouquet_id, name, price_cents, quantity, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(orderIDs)).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.BouquetID, &item.Name,
			&item.PriceCents, &item.Quantity, &item.Image)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// ListByEmail retrieves a customer's orders, newest first.
func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE email = $1
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders by email")
		return nil, fmt.Errorf("failed to query orders by email: %w", err)
	}

	return r.collectOrders(rows)
}

// CountByEmail counts a customer's orders, any status.
func (r *orderRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE email = $1
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, email).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders by email")
		return 0, fmt.Errorf("failed to count orders by email: %w", err)
	}

	return count, nil
}

// ExpirePending fails PENDING orders whose payment session was opened before
// the cutoff.
func (r *orderRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND stripe_session_id IS NOT NULL AND created_at < $3
	`

	tag, err := r.pool.Exec(ctx, query, model.OrderFailed, model.OrderPending, cutoff)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to expire pending orders")
		return 0, fmt.Errorf("failed to expire pending orders: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateStatus sets an order's payment status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// SetSession records the payment session opened for an order.
func (r *orderRepository) SetSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	query := `
		UPDATE orders
		SET stripe_session_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to set order session")
		return fmt.Errorf("failed to set order session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// MarkRead marks an order as seen in the admin panel.
func (r *orderRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE orders
		SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order read")
		return fmt.Errorf("failed to mark order read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// CountUnread counts orders not yet seen in the admin panel.
func (r *orderRepository) CountUnread(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE is_read = FALSE
	`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count unread orders")
		return 0, fmt.Errorf("failed to count unread orders: %w", err)
	}

	return count, nil
}
