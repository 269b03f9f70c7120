package repository

import (
	"context"
	"fmt"
	"strings"

	"bloomcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const bouquetColumns = `id, name, description, price_cents, currency, flower_type, style,
		colors, is_mixed, is_featured, is_active, discount_percent, discount_note, image,
		created_at, updated_at`

// bouquetRepository implements the BouquetRepository interface using PostgreSQL.
type bouquetRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBouquetRepository creates a new PostgreSQL-backed bouquet repository.
func NewBouquetRepository(pool *pgxpool.Pool, logger zerolog.Logger) BouquetRepository {
	return &bouquetRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bouquet").Logger(),
	}
}

func scanBouquet(row pgx.Row) (model.Bouquet, error) {
	var b model.Bouquet
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.PriceCents, &b.Currency, &b.FlowerType,
		&b.Style, &b.Colors, &b.IsMixed, &b.IsFeatured, &b.IsActive,
		&b.DiscountPercent, &b.DiscountNote, &b.Image, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *bouquetRepository) collect(rows pgx.Rows) ([]model.Bouquet, error) {
	defer rows.Close()

	var bouquets []model.Bouquet
	for rows.Next() {
		b, err := scanBouquet(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bouquet row")
			return nil, fmt.Errorf("failed to scan bouquet: %w", err)
		}
		bouquets = append(bouquets, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating bouquet rows")
		return nil, fmt.Errorf("error iterating bouquets: %w", err)
	}

	return bouquets, nil
}

// List retrieves active bouquets matching the AND-combined filter.
func (r *bouquetRepository) List(ctx context.Context, filter model.CatalogFilter) ([]model.Bouquet, error) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.FeaturedOnly {
		conditions = append(conditions, "is_featured = TRUE")
	}
	if filter.FlowerType != "" {
		conditions = append(conditions, "flower_type = "+addArg(string(filter.FlowerType)))
	}
	if filter.Style != "" {
		conditions = append(conditions, "style = "+addArg(string(filter.Style)))
	}
	if filter.Mixed == "mixed" {
		conditions = append(conditions, "is_mixed = TRUE")
	}
	if filter.Mixed == "mono" {
		conditions = append(conditions, "is_mixed = FALSE")
	}
	if filter.Color != "" {
		conditions = append(conditions, "LOWER(colors) LIKE "+addArg("%"+strings.ToLower(filter.Color)+"%"))
	}
	if filter.MinPriceCents != nil {
		conditions = append(conditions, "price_cents >= "+addArg(*filter.MinPriceCents))
	}
	if filter.MaxPriceCents != nil {
		conditions = append(conditions, "price_cents <= "+addArg(*filter.MaxPriceCents))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM bouquets
		WHERE %s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s
	`, bouquetColumns, strings.Join(conditions, " AND "), addArg(filter.Limit), addArg(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bouquets")
		return nil, fmt.Errorf("failed to query bouquets: %w", err)
	}

	return r.collect(rows)
}

// ListAll retrieves every bouquet for the admin panel, newest edits first.
func (r *bouquetRepository) ListAll(ctx context.Context) ([]model.Bouquet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bouquets
		ORDER BY updated_at DESC
	`, bouquetColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all bouquets")
		return nil, fmt.Errorf("failed to query bouquets: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single bouquet by its ID.
func (r *bouquetRepository) GetByID(ctx context.Context, id string) (*model.Bouquet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bouquets
		WHERE id = $1
	`, bouquetColumns)

	b, err := scanBouquet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("bouquet_id", id).Msg("bouquet not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("bouquet_id", id).Msg("failed to query bouquet")
		return nil, fmt.Errorf("failed to query bouquet: %w", err)
	}

	return &b, nil
}

// GetByIDs retrieves multiple bouquets by their IDs.
func (r *bouquetRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error) {
	if len(ids) == 0 {
		return []model.Bouquet{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM bouquets
		WHERE id = ANY($1)
		ORDER BY name
	`, bouquetColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query bouquets by IDs")
		return nil, fmt.Errorf("failed to query bouquets by IDs: %w", err)
	}

	return r.collect(rows)
}

// Create inserts a new bouquet.
func (r *bouquetRepository) Create(ctx context.Context, b *model.Bouquet) error {
	query := `
		INSERT INTO bouquets (
			id, name, description, price_cents, currency, flower_type, style,
			colors, is_mixed, is_featured, is_active, discount_percent, discount_note,
			image, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.PriceCents, b.Currency, b.FlowerType, b.Style,
		b.Colors, b.IsMixed, b.IsFeatured, b.IsActive, b.DiscountPercent, b.DiscountNote,
		b.Image, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("bouquet_id", b.ID).Msg("failed to insert bouquet")
		return fmt.Errorf("failed to insert bouquet: %w", err)
	}

	return nil
}

// Update rewrites an existing bouquet.
func (r *bouquetRepository) Update(ctx context.Context, b *model.Bouquet) error {
	query := `
		UPDATE bouquets
		SET name = $2, description = $3, price_cents = $4, currency = $5,
			flower_type = $6, style = $7, colors = $8, is_mixed = $9,
			is_featured = $10, is_active = $11, discount_percent = $12,
			discount_note = $13, image = $14, updated_at = $15
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.PriceCents, b.Currency, b.FlowerType, b.Style,
		b.Colors, b.IsMixed, b.IsFeatured, b.IsActive, b.DiscountPercent, b.DiscountNote,
		b.Image, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("bouquet_id", b.ID).Msg("failed to update bouquet")
		return fmt.Errorf("failed to update bouquet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBouquetNotFound
	}

	return nil
}

// SetActive toggles a bouquet's visibility in the catalogue.
func (r *bouquetRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `
		UPDATE bouquets
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, active)
	if err != nil {
		r.logger.Error().Err(err).Str("bouquet_id", id).Msg("failed to toggle bouquet")
		return fmt.Errorf("failed to toggle bouquet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBouquetNotFound
	}

	return nil
}
