package service

import (
	"context"
	"fmt"
	"strings"

	"bloomcart/internal/model"
	"bloomcart/internal/pricing"
	"bloomcart/internal/repository"

	"github.com/rs/zerolog"
)

// settingsService implements SettingsService.
type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger.With().Str("service", "settings").Logger(),
	}
}

// Get retrieves the current settings.
func (s *settingsService) Get(ctx context.Context) (model.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return model.StoreSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func applyPatch(s model.StoreSettings, patch model.SettingsUpdate) model.StoreSettings {
	if patch.GlobalDiscountPercent != nil {
		s.GlobalDiscountPercent = *patch.GlobalDiscountPercent
	}
	if patch.GlobalDiscountNote != nil {
		s.GlobalDiscountNote = patch.GlobalDiscountNote
	}
	if patch.CategoryDiscountPercent != nil {
		s.CategoryDiscountPercent = *patch.CategoryDiscountPercent
	}
	if patch.CategoryDiscountNote != nil {
		s.CategoryDiscountNote = patch.CategoryDiscountNote
	}
	if patch.CategoryFlowerType != nil {
		s.CategoryFlowerType = patch.CategoryFlowerType
	}
	if patch.CategoryStyle != nil {
		s.CategoryStyle = patch.CategoryStyle
	}
	if patch.CategoryMixed != nil {
		s.CategoryMixed = patch.CategoryMixed
	}
	if patch.CategoryColor != nil {
		s.CategoryColor = patch.CategoryColor
	}
	if patch.CategoryMinPriceCents != nil {
		s.CategoryMinPriceCents = patch.CategoryMinPriceCents
	}
	if patch.CategoryMaxPriceCents != nil {
		s.CategoryMaxPriceCents = patch.CategoryMaxPriceCents
	}
	if patch.FirstOrderDiscountPercent != nil {
		s.FirstOrderDiscountPercent = *patch.FirstOrderDiscountPercent
	}
	if patch.FirstOrderDiscountNote != nil {
		s.FirstOrderDiscountNote = patch.FirstOrderDiscountNote
	}
	return s
}

func noteMissing(note *string) bool {
	return note == nil || strings.TrimSpace(*note) == ""
}

// validateSettings enforces the two store-wide invariants: an active
// discount always carries a note, and the global and category discounts are
// never active at the same time.
func validateSettings(s model.StoreSettings) error {
	if s.GlobalDiscountPercent > 0 && s.CategoryDiscountPercent > 0 {
		return model.ErrDiscountConflict
	}
	if s.GlobalDiscountPercent > 0 && noteMissing(s.GlobalDiscountNote) {
		return model.ErrDiscountNote
	}
	if s.CategoryDiscountPercent > 0 && noteMissing(s.CategoryDiscountNote) {
		return model.ErrDiscountNote
	}
	if s.FirstOrderDiscountPercent > 0 && noteMissing(s.FirstOrderDiscountNote) {
		return model.ErrDiscountNote
	}
	return nil
}

// Update applies a patch to the settings, clamping percents and rejecting
// invalid discount combinations.
func (s *settingsService) Update(ctx context.Context, patch model.SettingsUpdate) (model.StoreSettings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return model.StoreSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	next := applyPatch(current, patch)
	next.ID = "default"
	next.GlobalDiscountPercent = pricing.ClampPercent(float64(next.GlobalDiscountPercent))
	next.CategoryDiscountPercent = pricing.ClampPercent(float64(next.CategoryDiscountPercent))
	next.FirstOrderDiscountPercent = pricing.ClampPercent(float64(next.FirstOrderDiscountPercent))

	if err := validateSettings(next); err != nil {
		s.logger.Warn().Err(err).Msg("settings update rejected")
		return model.StoreSettings{}, err
	}

	if err := s.settingsRepo.Update(ctx, next); err != nil {
		s.logger.Error().Err(err).Msg("failed to save settings")
		return model.StoreSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info().
		Int("global_percent", next.GlobalDiscountPercent).
		Int("category_percent", next.CategoryDiscountPercent).
		Int("first_order_percent", next.FirstOrderDiscountPercent).
		Msg("settings updated")

	return next, nil
}
