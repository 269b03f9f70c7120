package repository

import (
	"context"
	"fmt"

	"bloomcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const promoColumns = `id, title, subtitle, image, link, is_active, position`

// promotionRepository implements PromotionRepository using PostgreSQL.
type promotionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromotionRepository {
	return &promotionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promotion").Logger(),
	}
}

func (r *promotionRepository) collect(rows pgx.Rows) ([]model.PromoSlide, error) {
	defer rows.Close()

	var slides []model.PromoSlide
	for rows.Next() {
		var p model.PromoSlide
		err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Image, &p.Link, &p.IsActive, &p.Position)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promo slide row")
			return nil, fmt.Errorf("failed to scan promo slide: %w", err)
		}
		slides = append(slides, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promo slide rows")
		return nil, fmt.Errorf("error iterating promo slides: %w", err)
	}

	return slides, nil
}

// ListActive retrieves active slides in display order.
func (r *promotionRepository) ListActive(ctx context.Context) ([]model.PromoSlide, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promo_slides
		WHERE is_active = TRUE
		ORDER BY position
	`, promoColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query active promo slides")
		return nil, fmt.Errorf("failed to query promo slides: %w", err)
	}

	return r.collect(rows)
}

// ListAll retrieves every slide for the admin panel.
func (r *promotionRepository) ListAll(ctx context.Context) ([]model.PromoSlide, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promo_slides
		ORDER BY position
	`, promoColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all promo slides")
		return nil, fmt.Errorf("failed to query promo slides: %w", err)
	}

	return r.collect(rows)
}

// Create inserts a new slide.
func (r *promotionRepository) Create(ctx context.Context, p *model.PromoSlide) error {
	query := `
		INSERT INTO promo_slides (id, title, subtitle, image, link, is_active, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Title, p.Subtitle, p.Image, p.Link, p.IsActive, p.Position)
	if err != nil {
		r.logger.Error().Err(err).Str("slide_id", p.ID).Msg("failed to insert promo slide")
		return fmt.Errorf("failed to insert promo slide: %w", err)
	}

	return nil
}

// Update rewrites an existing slide.
func (r *promotionRepository) Update(ctx context.Context, p *model.PromoSlide) error {
	query := `
		UPDATE promo_slides
		SET title = $2, subtitle = $3, image = $4, link = $5, is_active = $6, position = $7
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Title, p.Subtitle, p.Image, p.Link, p.IsActive, p.Position)
	if err != nil {
		r.logger.Error().Err(err).Str("slide_id", p.ID).Msg("failed to update promo slide")
		return fmt.Errorf("failed to update promo slide: %w", err)
	}

	return nil
}

// Delete removes a slide.
func (r *promotionRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM promo_slides
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("slide_id", id).Msg("failed to delete promo slide")
		return fmt.Errorf("failed to delete promo slide: %w", err)
	}

	return nil
}
