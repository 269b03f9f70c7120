package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bloomcart/internal/format"
	"bloomcart/internal/model"
	"bloomcart/internal/pricing"
	"bloomcart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo    repository.OrderRepository
	bouquetRepo  repository.BouquetRepository
	settingsRepo repository.SettingsRepository
	payments     PaymentProvider
	currency     string
	logger       zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	bouquetRepo repository.BouquetRepository,
	settingsRepo repository.SettingsRepository,
	payments PaymentProvider,
	currency string,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:    orderRepo,
		bouquetRepo:  bouquetRepo,
		settingsRepo: settingsRepo,
		payments:     payments,
		currency:     currency,
		logger:       logger.With().Str("service", "checkout").Logger(),
	}
}

func validateCartItems(items []model.CartItem) error {
	if len(items) == 0 {
		return model.ErrEmptyCart
	}
	for i, item := range items {
		if item.BouquetID == "" {
			return fmt.Errorf("item %d: bouquet ID is required", i)
		}
		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}
	return nil
}

// rebuildLines replaces the client-supplied line attributes with current
// catalogue data so a tampered cart cannot buy at stale prices. Only the
// bouquet ID and quantity are trusted.
func (s *checkoutService) rebuildLines(ctx context.Context, items []model.CartItem) ([]model.CartItem, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.BouquetID
	}

	bouquets, err := s.bouquetRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart bouquets")
		return nil, fmt.Errorf("failed to load cart bouquets: %w", err)
	}

	byID := make(map[string]model.Bouquet, len(bouquets))
	for _, b := range bouquets {
		byID[b.ID] = b
	}

	lines := make([]model.CartItem, len(items))
	for i, item := range items {
		b, ok := byID[item.BouquetID]
		if !ok || !b.IsActive {
			s.logger.Warn().Str("bouquet_id", item.BouquetID).Msg("cart references unavailable bouquet")
			return nil, model.ErrBouquetNotFound
		}
		lines[i] = model.CartItem{
			BouquetID:              b.ID,
			Name:                   b.Name,
			BasePriceCents:         b.PriceCents,
			Quantity:               item.Quantity,
			Image:                  b.Image,
			BouquetDiscountPercent: b.DiscountPercent,
			BouquetDiscountNote:    b.DiscountNote,
			FlowerType:             string(b.FlowerType),
			IsMixed:                b.IsMixed,
			Colors:                 b.Colors,
		}
	}

	return lines, nil
}

// priorOrderCount resolves first-order eligibility. Guests checking out
// without an email never qualify, so they are treated as returning customers.
func (s *checkoutService) priorOrderCount(ctx context.Context, email *string) (int, error) {
	if email == nil || strings.TrimSpace(*email) == "" {
		return 1, nil
	}

	count, err := s.orderRepo.CountByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count prior orders")
		return 0, fmt.Errorf("failed to count prior orders: %w", err)
	}
	return count, nil
}

// PriceCart reprices the cart from current catalogue data.
func (s *checkoutService) PriceCart(ctx context.Context, email *string, items []model.CartItem) (pricing.CartTotals, error) {
	if err := validateCartItems(items); err != nil {
		return pricing.CartTotals{}, err
	}

	lines, err := s.rebuildLines(ctx, items)
	if err != nil {
		return pricing.CartTotals{}, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return pricing.CartTotals{}, fmt.Errorf("failed to price cart: %w", err)
	}

	priorOrders, err := s.priorOrderCount(ctx, email)
	if err != nil {
		return pricing.CartTotals{}, err
	}

	return pricing.PriceCart(lines, settings, priorOrders), nil
}

// Checkout prices the cart, creates a PENDING order in a transaction and
// opens a payment session for it.
func (s *checkoutService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("checkout request is nil")
	}

	totals, err := s.PriceCart(ctx, req.Email, req.Items)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:         uuid.New(),
		Email:      req.Email,
		Phone:      req.Phone,
		TotalCents: totals.TotalCents,
		Currency:   s.currency,
		Status:     model.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(totals.Lines))
	for i, line := range totals.Lines {
		bouquetID := line.Item.BouquetID
		orderItems[i] = model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			BouquetID:  &bouquetID,
			Name:       line.Item.Name,
			PriceCents: line.UnitPriceCents,
			Quantity:   line.Item.Quantity,
			Image:      line.Item.Image,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	sessionID, paymentURL, err := s.payments.CreateSession(ctx, order, orderItems)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to open payment session")
		return nil, fmt.Errorf("failed to open payment session: %w", err)
	}

	if err = s.orderRepo.SetSession(ctx, order.ID, sessionID); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to record payment session")
		return nil, fmt.Errorf("failed to record payment session: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(orderItems)).
		Int("total_cents", totals.TotalCents).
		Msg("checkout started")

	return &model.CheckoutResponse{
		OrderID:    order.ID,
		TotalCents: totals.TotalCents,
		Currency:   s.currency,
		PaymentURL: paymentURL,
	}, nil
}

// GetOrder retrieves an order with its items.
func (s *checkoutService) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return &model.OrderResponse{
		Order:         *order,
		Items:         items,
		StatusDisplay: format.OrderStatus(order.Status),
	}, nil
}

// ConfirmPayment finalises an order after the payment session concludes.
func (s *checkoutService) ConfirmPayment(ctx context.Context, id uuid.UUID, succeeded bool) error {
	status := model.OrderCanceled
	if succeeded {
		status = model.OrderPaid
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to confirm payment")
		return err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("payment session concluded")
	return nil
}

// ListByEmail retrieves a signed-in customer's order history.
func (s *checkoutService) ListByEmail(ctx context.Context, email string) ([]model.OrderResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders by email")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return s.attachItems(ctx, orders)
}

// attachItems loads the items of all given orders in one query and groups
// them onto their orders.
func (s *checkoutService) attachItems(ctx context.Context, orders []model.Order) ([]model.OrderResponse, error) {
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := s.orderRepo.ListItems(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order items")
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	byOrder := make(map[uuid.UUID][]model.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = model.OrderResponse{
			Order:         o,
			Items:         byOrder[o.ID],
			StatusDisplay: format.OrderStatus(o.Status),
		}
	}
	return responses, nil
}
