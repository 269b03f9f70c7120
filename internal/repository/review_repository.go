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

const reviewColumns = `id, author, rating, text, image, is_approved, is_featured, created_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) collect(rows pgx.Rows) ([]model.Review, error) {
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.Author, &rv.Rating, &rv.Text, &rv.Image,
			&rv.IsApproved, &rv.IsFeatured, &rv.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// ListApproved retrieves approved reviews for the public gallery.
func (r *reviewRepository) ListApproved(ctx context.Context) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE is_approved = TRUE
		ORDER BY is_featured DESC, created_at DESC
	`, reviewColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query approved reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	return r.collect(rows)
}

// ListAll retrieves every review for moderation.
func (r *reviewRepository) ListAll(ctx context.Context) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		ORDER BY created_at DESC
	`, reviewColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	return r.collect(rows)
}

// ListByCreatedRange retrieves reviews created in [start, end), newest first.
func (r *reviewRepository) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		r.logger.Error().Err(err).
			Time("start", start).
			Time("end", end).
			Msg("failed to query reviews by range")
		return nil, fmt.Errorf("failed to query reviews by range: %w", err)
	}

	return r.collect(rows)
}

// Create inserts a new review, unapproved by default.
func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (id, author, rating, text, image, is_approved, is_featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rv.ID, rv.Author, rv.Rating, rv.Text, rv.Image,
		rv.IsApproved, rv.IsFeatured, rv.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", rv.ID.String()).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// SetApproved toggles a review's public visibility.
func (r *reviewRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	query := `
		UPDATE reviews
		SET is_approved = $2
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, approved)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to moderate review")
		return fmt.Errorf("failed to moderate review: %w", err)
	}

	return nil
}

// Delete removes a review.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM reviews
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
