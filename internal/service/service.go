package service

import (
	"context"

	"bloomcart/internal/model"
	"bloomcart/internal/pricing"

	"github.com/google/uuid"
)

// PricedBouquet couples a bouquet with its resolved discount and final price.
// FlowerLabel is the flower type rendered for storefront chips.
type PricedBouquet struct {
	model.Bouquet
	Pricing     pricing.Pricing `json:"pricing"`
	FlowerLabel string          `json:"flowerLabel"`
}

// DayOrders is one page of the admin day-by-day order listing.
type DayOrders struct {
	DayKey  string                `json:"dayKey"`
	PrevKey string                `json:"prevKey"`
	NextKey string                `json:"nextKey"`
	Orders  []model.OrderResponse `json:"orders"`
}

// WeekNavigation is the admin pager state for one week of day buckets.
type WeekNavigation struct {
	WeekStartKey string   `json:"weekStartKey"`
	DayKeys      []string `json:"dayKeys"`
	PrevWeekKey  string   `json:"prevWeekKey"`
	NextWeekKey  string   `json:"nextWeekKey"`
}

// CatalogService defines storefront and admin catalogue operations.
type CatalogService interface {
	// ListBouquets retrieves active bouquets matching the filter, priced.
	ListBouquets(ctx context.Context, filter model.CatalogFilter) ([]PricedBouquet, error)

	// GetBouquet retrieves a single bouquet by ID, priced. Returns nil when
	// the bouquet does not exist.
	GetBouquet(ctx context.Context, id string) (*PricedBouquet, error)

	// ListFeatured retrieves the featured bouquets for the home page, priced.
	ListFeatured(ctx context.Context) ([]PricedBouquet, error)

	// ListPromoSlides retrieves the active promo slides in display order.
	ListPromoSlides(ctx context.Context) ([]model.PromoSlide, error)

	// ListAllBouquets retrieves every bouquet for the admin panel.
	ListAllBouquets(ctx context.Context) ([]model.Bouquet, error)

	// CreateBouquet validates and inserts a new bouquet.
	CreateBouquet(ctx context.Context, b *model.Bouquet) error

	// UpdateBouquet validates and rewrites an existing bouquet.
	UpdateBouquet(ctx context.Context, b *model.Bouquet) error

	// SetBouquetActive toggles a bouquet's catalogue visibility.
	SetBouquetActive(ctx context.Context, id string, active bool) error

	// ListAllPromoSlides retrieves every slide for the admin panel.
	ListAllPromoSlides(ctx context.Context) ([]model.PromoSlide, error)

	// CreatePromoSlide inserts a new slide.
	CreatePromoSlide(ctx context.Context, p *model.PromoSlide) error

	// UpdatePromoSlide rewrites an existing slide.
	UpdatePromoSlide(ctx context.Context, p *model.PromoSlide) error

	// DeletePromoSlide removes a slide.
	DeletePromoSlide(ctx context.Context, id string) error
}

// CheckoutService defines cart pricing and order creation operations.
type CheckoutService interface {
	// PriceCart reprices the cart from current catalogue data. Email, when
	// present, determines first-order discount eligibility.
	PriceCart(ctx context.Context, email *string, items []model.CartItem) (pricing.CartTotals, error)

	// Checkout prices the cart, creates a PENDING order and opens a payment
	// session for it.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// GetOrder retrieves an order with its items. Returns nil when the order
	// does not exist.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ConfirmPayment finalises an order after the payment session concludes.
	ConfirmPayment(ctx context.Context, id uuid.UUID, succeeded bool) error

	// ListByEmail retrieves a signed-in customer's order history.
	ListByEmail(ctx context.Context, email string) ([]model.OrderResponse, error)
}

// AdminOrderService defines the day-bucketed admin order views.
type AdminOrderService interface {
	// ListByDay retrieves the orders created on the named calendar day in the
	// store timezone, sweeping stale pending orders first.
	ListByDay(ctx context.Context, dayKey string) (*DayOrders, error)

	// Week computes the pager state for the week starting at weekStartKey.
	// An empty or malformed key falls back to the current trailing week.
	Week(weekStartKey string) WeekNavigation

	// MarkRead marks an order as seen in the admin panel.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// UnreadCount counts orders not yet seen in the admin panel.
	UnreadCount(ctx context.Context) (int, error)

	// UpdateStatus sets an order's payment status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

// SettingsService defines access to the store-wide discount configuration.
type SettingsService interface {
	// Get retrieves the current settings.
	Get(ctx context.Context) (model.StoreSettings, error)

	// Update applies a patch to the settings, clamping percents and rejecting
	// invalid discount combinations. Returns the settings as persisted.
	Update(ctx context.Context, patch model.SettingsUpdate) (model.StoreSettings, error)
}

// ReviewService defines public review submission and admin moderation.
type ReviewService interface {
	// ListApproved retrieves the approved reviews for the public gallery.
	ListApproved(ctx context.Context) ([]model.Review, error)

	// ListAll retrieves every review for moderation.
	ListAll(ctx context.Context) ([]model.Review, error)

	// ListByDay retrieves reviews submitted on the named calendar day in the
	// store timezone.
	ListByDay(ctx context.Context, dayKey string) ([]model.Review, error)

	// Submit validates and stores a new review, unapproved.
	Submit(ctx context.Context, review *model.Review) error

	// SetApproved toggles a review's public visibility.
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error
}
