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

const (
	defaultCatalogLimit = 20
	maxCatalogLimit     = 100
	featuredLimit       = 8
)

// catalogService implements CatalogService.
type catalogService struct {
	bouquetRepo  repository.BouquetRepository
	settingsRepo repository.SettingsRepository
	promoRepo    repository.PromotionRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	bouquetRepo repository.BouquetRepository,
	settingsRepo repository.SettingsRepository,
	promoRepo repository.PromotionRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		bouquetRepo:  bouquetRepo,
		settingsRepo: settingsRepo,
		promoRepo:    promoRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) priceAll(bouquets []model.Bouquet, settings model.StoreSettings) []PricedBouquet {
	priced := make([]PricedBouquet, len(bouquets))
	for i, b := range bouquets {
		priced[i] = PricedBouquet{
			Bouquet:     b,
			Pricing:     pricing.BouquetPricing(b, settings),
			FlowerLabel: format.Label(string(b.FlowerType)),
		}
	}
	return priced
}

// ListBouquets retrieves active bouquets matching the filter, priced.
func (s *catalogService) ListBouquets(ctx context.Context, filter model.CatalogFilter) ([]PricedBouquet, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultCatalogLimit
	}
	if filter.Limit > maxCatalogLimit {
		filter.Limit = maxCatalogLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return nil, fmt.Errorf("failed to list bouquets: %w", err)
	}

	bouquets, err := s.bouquetRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list bouquets")
		return nil, fmt.Errorf("failed to list bouquets: %w", err)
	}

	s.logger.Debug().
		Int("count", len(bouquets)).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Msg("bouquets listed")

	return s.priceAll(bouquets, settings), nil
}

// GetBouquet retrieves a single bouquet by ID, priced.
func (s *catalogService) GetBouquet(ctx context.Context, id string) (*PricedBouquet, error) {
	if id == "" {
		return nil, fmt.Errorf("bouquet ID is required")
	}

	b, err := s.bouquetRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("bouquet_id", id).Msg("failed to get bouquet")
		return nil, fmt.Errorf("failed to get bouquet: %w", err)
	}
	if b == nil {
		s.logger.Debug().Str("bouquet_id", id).Msg("bouquet not found")
		return nil, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return nil, fmt.Errorf("failed to get bouquet: %w", err)
	}

	return &PricedBouquet{
		Bouquet:     *b,
		Pricing:     pricing.BouquetPricing(*b, settings),
		FlowerLabel: format.Label(string(b.FlowerType)),
	}, nil
}

// ListFeatured retrieves the featured bouquets for the home page, priced.
func (s *catalogService) ListFeatured(ctx context.Context) ([]PricedBouquet, error) {
	return s.ListBouquets(ctx, model.CatalogFilter{
		FeaturedOnly: true,
		Limit:        featuredLimit,
	})
}

// ListPromoSlides retrieves the active promo slides in display order.
func (s *catalogService) ListPromoSlides(ctx context.Context) ([]model.PromoSlide, error) {
	slides, err := s.promoRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list promo slides")
		return nil, fmt.Errorf("failed to list promo slides: %w", err)
	}
	return slides, nil
}

// ListAllBouquets retrieves every bouquet for the admin panel.
func (s *catalogService) ListAllBouquets(ctx context.Context) ([]model.Bouquet, error) {
	bouquets, err := s.bouquetRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all bouquets")
		return nil, fmt.Errorf("failed to list bouquets: %w", err)
	}
	return bouquets, nil
}

// validateBouquet normalises a bouquet before it is written: the discount
// percent is clamped and a discount above zero must carry a note.
func validateBouquet(b *model.Bouquet) error {
	if strings.TrimSpace(b.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Bouquet name is required")
	}
	if b.PriceCents < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Bouquet price cannot be negative")
	}
	if _, ok := model.ParseFlowerType(string(b.FlowerType)); !ok {
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown flower type")
	}
	if _, ok := model.ParseBouquetStyle(string(b.Style)); !ok {
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown bouquet style")
	}

	b.DiscountPercent = pricing.ClampPercent(float64(b.DiscountPercent))
	if b.DiscountPercent > 0 && (b.DiscountNote == nil || strings.TrimSpace(*b.DiscountNote) == "") {
		return model.ErrDiscountNote
	}

	return nil
}

// CreateBouquet validates and inserts a new bouquet.
func (s *catalogService) CreateBouquet(ctx context.Context, b *model.Bouquet) error {
	if err := validateBouquet(b); err != nil {
		return err
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.bouquetRepo.Create(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("bouquet_id", b.ID).Msg("failed to create bouquet")
		return fmt.Errorf("failed to create bouquet: %w", err)
	}

	s.logger.Info().Str("bouquet_id", b.ID).Str("name", b.Name).Msg("bouquet created")
	return nil
}

// UpdateBouquet validates and rewrites an existing bouquet.
func (s *catalogService) UpdateBouquet(ctx context.Context, b *model.Bouquet) error {
	if b.ID == "" {
		return fmt.Errorf("bouquet ID is required")
	}
	if err := validateBouquet(b); err != nil {
		return err
	}

	b.UpdatedAt = time.Now()

	if err := s.bouquetRepo.Update(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("bouquet_id", b.ID).Msg("failed to update bouquet")
		return err
	}

	s.logger.Info().Str("bouquet_id", b.ID).Msg("bouquet updated")
	return nil
}

// SetBouquetActive toggles a bouquet's catalogue visibility.
func (s *catalogService) SetBouquetActive(ctx context.Context, id string, active bool) error {
	if err := s.bouquetRepo.SetActive(ctx, id, active); err != nil {
		s.logger.Error().Err(err).Str("bouquet_id", id).Msg("failed to toggle bouquet")
		return err
	}

	s.logger.Info().Str("bouquet_id", id).Bool("active", active).Msg("bouquet visibility changed")
	return nil
}

// ListAllPromoSlides retrieves every slide for the admin panel.
func (s *catalogService) ListAllPromoSlides(ctx context.Context) ([]model.PromoSlide, error) {
	slides, err := s.promoRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all promo slides")
		return nil, fmt.Errorf("failed to list promo slides: %w", err)
	}
	return slides, nil
}

// CreatePromoSlide inserts a new slide.
func (s *catalogService) CreatePromoSlide(ctx context.Context, p *model.PromoSlide) error {
	if strings.TrimSpace(p.Title) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Slide title is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := s.promoRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("slide_id", p.ID).Msg("failed to create promo slide")
		return fmt.Errorf("failed to create promo slide: %w", err)
	}

	s.logger.Info().Str("slide_id", p.ID).Msg("promo slide created")
	return nil
}

// UpdatePromoSlide rewrites an existing slide.
func (s *catalogService) UpdatePromoSlide(ctx context.Context, p *model.PromoSlide) error {
	if p.ID == "" {
		return fmt.Errorf("slide ID is required")
	}

	if err := s.promoRepo.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("slide_id", p.ID).Msg("failed to update promo slide")
		return err
	}

	s.logger.Info().Str("slide_id", p.ID).Msg("promo slide updated")
	return nil
}

// DeletePromoSlide removes a slide.
func (s *catalogService) DeletePromoSlide(ctx context.Context, id string) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("slide_id", id).Msg("failed to delete promo slide")
		return err
	}

	s.logger.Info().Str("slide_id", id).Msg("promo slide deleted")
	return nil
}
