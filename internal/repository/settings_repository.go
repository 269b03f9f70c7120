package repository

import (
	"context"
	"fmt"

	"bloomcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingsRepository implements SettingsRepository using PostgreSQL.
type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

// Get returns the singleton settings row, or defaults if none exists yet.
func (r *settingsRepository) Get(ctx context.Context) (model.StoreSettings, error) {
	query := `
		SELECT id, global_discount_percent, global_discount_note,
			category_discount_percent, category_discount_note, category_flower_type,
			category_style, category_mixed, category_color,
			category_min_price_cents, category_max_price_cents,
			first_order_discount_percent, first_order_discount_note
		FROM store_settings
		WHERE id = 'default'
	`

	var s model.StoreSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.ID, &s.GlobalDiscountPercent, &s.GlobalDiscountNote,
		&s.CategoryDiscountPercent, &s.CategoryDiscountNote, &s.CategoryFlowerType,
		&s.CategoryStyle, &s.CategoryMixed, &s.CategoryColor,
		&s.CategoryMinPriceCents, &s.CategoryMaxPriceCents,
		&s.FirstOrderDiscountPercent, &s.FirstOrderDiscountNote,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Msg("no settings row yet, using defaults")
			return model.DefaultStoreSettings(), nil
		}
		r.logger.Error().Err(err).Msg("failed to query settings")
		return model.StoreSettings{}, fmt.Errorf("failed to query settings: %w", err)
	}

	return s, nil
}

// Update upserts the singleton settings row.
func (r *settingsRepository) Update(ctx context.Context, s model.StoreSettings) error {
	query := `
		INSERT INTO store_settings (
			id, global_discount_percent, global_discount_note,
			category_discount_percent, category_discount_note, category_flower_type,
			category_style, category_mixed, category_color,
			category_min_price_cents, category_max_price_cents,
			first_order_discount_percent, first_order_discount_note
		)
		VALUES ('default', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			global_discount_percent = EXCLUDED.global_discount_percent,
			global_discount_note = EXCLUDED.global_discount_note,
			category_discount_percent = EXCLUDED.category_discount_percent,
			category_discount_note = EXCLUDED.category_discount_note,
			category_flower_type = EXCLUDED.category_flower_type,
			category_style = EXCLUDED.category_style,
			category_mixed = EXCLUDED.category_mixed,
			category_color = EXCLUDED.category_color,
			category_min_price_cents = EXCLUDED.category_min_price_cents,
			category_max_price_cents = EXCLUDED.category_max_price_cents,
			first_order_discount_percent = EXCLUDED.first_order_discount_percent,
			first_order_discount_note = EXCLUDED.first_order_discount_note
	`

	_, err := r.pool.Exec(ctx, query,
		s.GlobalDiscountPercent, s.GlobalDiscountNote,
		s.CategoryDiscountPercent, s.CategoryDiscountNote, s.CategoryFlowerType,
		s.CategoryStyle, s.CategoryMixed, s.CategoryColor,
		s.CategoryMinPriceCents, s.CategoryMaxPriceCents,
		s.FirstOrderDiscountPercent, s.FirstOrderDiscountNote,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to upsert settings")
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}
