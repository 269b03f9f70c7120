package service

import (
	"context"
	"testing"

	"bloomcart/internal/model"
	"bloomcart/internal/pricing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*MockBouquetRepository, *MockSettingsRepository, *MockPromotionRepository, CatalogService) {
	bouquetRepo := new(MockBouquetRepository)
	settingsRepo := new(MockSettingsRepository)
	promoRepo := new(MockPromotionRepository)
	svc := NewCatalogService(bouquetRepo, settingsRepo, promoRepo, zerolog.Nop())
	return bouquetRepo, settingsRepo, promoRepo, svc
}

func TestCatalogService_ListBouquets_DecoratesWithPricing(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, settingsRepo, _, svc := newCatalogFixture()

	settings := model.DefaultStoreSettings()
	settings.GlobalDiscountPercent = 10
	settings.GlobalDiscountNote = strPtr("Weekend")

	plain := testBouquet("B1", 10000)
	flagged := testBouquet("B2", 5000)
	flagged.DiscountPercent = 25
	flagged.DiscountNote = strPtr("VIP")

	settingsRepo.On("Get", ctx).Return(settings, nil)
	bouquetRepo.On("List", ctx, mock.AnythingOfType("model.CatalogFilter")).
		Return([]model.Bouquet{plain, flagged}, nil)

	priced, err := svc.ListBouquets(ctx, model.CatalogFilter{})

	require.NoError(t, err)
	require.Len(t, priced, 2)

	assert.Equal(t, 9000, priced[0].Pricing.FinalPriceCents)
	require.NotNil(t, priced[0].Pricing.Discount)
	assert.Equal(t, pricing.SourceGlobal, priced[0].Pricing.Discount.Source)

	assert.Equal(t, 3750, priced[1].Pricing.FinalPriceCents)
	require.NotNil(t, priced[1].Pricing.Discount)
	assert.Equal(t, pricing.SourceBouquet, priced[1].Pricing.Discount.Source)
	assert.Equal(t, "VIP", priced[1].Pricing.Discount.Note)
}

func TestCatalogService_ListBouquets_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, settingsRepo, _, svc := newCatalogFixture()

	settingsRepo.On("Get", ctx).Return(model.DefaultStoreSettings(), nil)
	bouquetRepo.On("List", ctx, mock.MatchedBy(func(f model.CatalogFilter) bool {
		return f.Limit == maxCatalogLimit && f.Offset == 0
	})).Return([]model.Bouquet{}, nil)

	_, err := svc.ListBouquets(ctx, model.CatalogFilter{Limit: 5000, Offset: -3})

	require.NoError(t, err)
	bouquetRepo.AssertExpectations(t)
}

func TestCatalogService_GetBouquet_NotFound(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, _, _, svc := newCatalogFixture()

	bouquetRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	priced, err := svc.GetBouquet(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, priced)
}

func TestCatalogService_ListFeatured_UsesFeaturedFilter(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, settingsRepo, _, svc := newCatalogFixture()

	settingsRepo.On("Get", ctx).Return(model.DefaultStoreSettings(), nil)
	bouquetRepo.On("List", ctx, mock.MatchedBy(func(f model.CatalogFilter) bool {
		return f.FeaturedOnly && f.Limit == featuredLimit
	})).Return([]model.Bouquet{}, nil)

	_, err := svc.ListFeatured(ctx)

	require.NoError(t, err)
	bouquetRepo.AssertExpectations(t)
}

func TestCatalogService_CreateBouquet_Validation(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, _, _, svc := newCatalogFixture()

	tests := []struct {
		name    string
		mutate  func(b *model.Bouquet)
		wantErr error
	}{
		{
			name:    "discount without note rejected",
			mutate:  func(b *model.Bouquet) { b.DiscountPercent = 15; b.DiscountNote = nil },
			wantErr: model.ErrDiscountNote,
		},
		{
			name:    "blank note rejected",
			mutate:  func(b *model.Bouquet) { b.DiscountPercent = 15; b.DiscountNote = strPtr("   ") },
			wantErr: model.ErrDiscountNote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBouquet("", 5000)
			tt.mutate(&b)

			err := svc.CreateBouquet(ctx, &b)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing name rejected", func(t *testing.T) {
		b := testBouquet("", 5000)
		b.Name = "  "

		err := svc.CreateBouquet(ctx, &b)
		require.Error(t, err)
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
	})

	bouquetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateBouquet_ClampsDiscountAndAssignsID(t *testing.T) {
	ctx := context.Background()
	bouquetRepo, _, _, svc := newCatalogFixture()

	b := testBouquet("", 5000)
	b.DiscountPercent = 250
	b.DiscountNote = strPtr("Blowout")

	bouquetRepo.On("Create", ctx, &b).Return(nil)

	require.NoError(t, svc.CreateBouquet(ctx, &b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, pricing.MaxDiscountPercent, b.DiscountPercent)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}

func TestCatalogService_ListPromoSlides(t *testing.T) {
	ctx := context.Background()
	_, _, promoRepo, svc := newCatalogFixture()

	slides := []model.PromoSlide{
		{ID: "S1", Title: "Spring Sale", IsActive: true, Position: 1},
		{ID: "S2", Title: "Mother's Day", IsActive: true, Position: 2},
	}
	promoRepo.On("ListActive", ctx).Return(slides, nil)

	got, err := svc.ListPromoSlides(ctx)
	require.NoError(t, err)
	assert.Equal(t, slides, got)
}

func TestCatalogService_CreatePromoSlide_RequiresTitle(t *testing.T) {
	ctx := context.Background()
	_, _, promoRepo, svc := newCatalogFixture()

	err := svc.CreatePromoSlide(ctx, &model.PromoSlide{Title: " "})
	require.Error(t, err)
	promoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
