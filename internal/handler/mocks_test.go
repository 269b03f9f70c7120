package handler

import (
	"context"

	"bloomcart/internal/model"
	"bloomcart/internal/pricing"
	"bloomcart/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListBouquets(ctx context.Context, filter model.CatalogFilter) ([]service.PricedBouquet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PricedBouquet), args.Error(1)
}

func (m *MockCatalogService) GetBouquet(ctx context.Context, id string) (*service.PricedBouquet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PricedBouquet), args.Error(1)
}

func (m *MockCatalogService) ListFeatured(ctx context.Context) ([]service.PricedBouquet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PricedBouquet), args.Error(1)
}

func (m *MockCatalogService) ListPromoSlides(ctx context.Context) ([]model.PromoSlide, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PromoSlide), args.Error(1)
}

func (m *MockCatalogService) ListAllBouquets(ctx context.Context) ([]model.Bouquet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bouquet), args.Error(1)
}

func (m *MockCatalogService) CreateBouquet(ctx context.Context, b *model.Bouquet) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockCatalogService) UpdateBouquet(ctx context.Context, b *model.Bouquet) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockCatalogService) SetBouquetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockCatalogService) ListAllPromoSlides(ctx context.Context) ([]model.PromoSlide, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PromoSlide), args.Error(1)
}

func (m *MockCatalogService) CreatePromoSlide(ctx context.Context, p *model.PromoSlide) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogService) UpdatePromoSlide(ctx context.Context, p *model.PromoSlide) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogService) DeletePromoSlide(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) PriceCart(ctx context.Context, email *string, items []model.CartItem) (pricing.CartTotals, error) {
	args := m.Called(ctx, email, items)
	return args.Get(0).(pricing.CartTotals), args.Error(1)
}

func (m *MockCheckoutService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockCheckoutService) ConfirmPayment(ctx context.Context, id uuid.UUID, succeeded bool) error {
	args := m.Called(ctx, id, succeeded)
	return args.Error(0)
}

func (m *MockCheckoutService) ListByEmail(ctx context.Context, email string) ([]model.OrderResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}
