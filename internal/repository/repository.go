package repository

import (
	"context"
	"time"

	"bloomcart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BouquetRepository defines the interface for bouquet data access operations.
type BouquetRepository interface {
	// List retrieves active bouquets matching the AND-combined filter.
	List(ctx context.Context, filter model.CatalogFilter) ([]model.Bouquet, error)

	// ListAll retrieves every bouquet for the admin panel, newest edits first.
	ListAll(ctx context.Context) ([]model.Bouquet, error)

	// GetByID retrieves a single bouquet by its ID.
	GetByID(ctx context.Context, id string) (*model.Bouquet, error)

	// GetByIDs retrieves multiple bouquets by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error)

	// Create inserts a new bouquet.
	Create(ctx context.Context, b *model.Bouquet) error

	// Update rewrites an existing bouquet.
	Update(ctx context.Context, b *model.Bouquet) error

	// SetActive toggles a bouquet's visibility in the catalogue.
	SetActive(ctx context.Context, id string, active bool) error
}

// SettingsRepository defines access to the singleton store settings row.
type SettingsRepository interface {
	// Get returns the settings row, or defaults if none has been saved yet.
	Get(ctx context.Context) (model.StoreSettings, error)

	// Update upserts the settings row.
	Update(ctx context.Context, s model.StoreSettings) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByCreatedRange retrieves orders created in [start, end), newest first.
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]model.Order, error)

	// ListItems retrieves the items of all given orders.
	ListItems(ctx context.Context, orderIDs []uuid.UUID) ([]model.OrderItem, error)

	// ListByEmail retrieves a customer's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)

	// CountByEmail counts a customer's orders, any status.
	CountByEmail(ctx context.Context, email string) (int, error)

	// ExpirePending fails PENDING orders with a payment session created
	// before the cutoff. Returns how many orders were expired.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)

	// UpdateStatus sets an order's payment status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	// SetSession records the payment session opened for an order.
	SetSession(ctx context.Context, id uuid.UUID, sessionID string) error

	// MarkRead marks an order as seen in the admin panel.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// CountUnread counts orders not yet seen in the admin panel.
	CountUnread(ctx context.Context) (int, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// ListApproved retrieves approved reviews for the public gallery.
	ListApproved(ctx context.Context) ([]model.Review, error)

	// ListAll retrieves every review for moderation.
	ListAll(ctx context.Context) ([]model.Review, error)

	// ListByCreatedRange retrieves reviews created in [start, end), newest first.
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]model.Review, error)

	// Create inserts a new review, unapproved by default.
	Create(ctx context.Context, r *model.Review) error

	// SetApproved toggles a review's public visibility.
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromotionRepository defines the interface for promo slide data access.
type PromotionRepository interface {
	// ListActive retrieves active slides in display order.
	ListActive(ctx context.Context) ([]model.PromoSlide, error)

	// ListAll retrieves every slide for the admin panel.
	ListAll(ctx context.Context) ([]model.PromoSlide, error)

	// Create inserts a new slide.
	Create(ctx context.Context, p *model.PromoSlide) error

	// Update rewrites an existing slide.
	Update(ctx context.Context, p *model.PromoSlide) error

	// Delete removes a slide.
	Delete(ctx context.Context, id string) error
}
