package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bloomcart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS bouquets (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
			currency VARCHAR(10) NOT NULL DEFAULT 'usd',
			flower_type VARCHAR(20) NOT NULL,
			style VARCHAR(20) NOT NULL,
			colors TEXT NOT NULL DEFAULT '',
			is_mixed BOOLEAN NOT NULL DEFAULT FALSE,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			discount_percent INTEGER NOT NULL DEFAULT 0,
			discount_note TEXT,
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS store_settings (
			id VARCHAR(20) PRIMARY KEY,
			global_discount_percent INTEGER NOT NULL DEFAULT 0,
			global_discount_note TEXT,
			category_discount_percent INTEGER NOT NULL DEFAULT 0,
			category_discount_note TEXT,
			category_flower_type VARCHAR(20),
			category_style VARCHAR(20),
			category_mixed VARCHAR(10),
			category_color VARCHAR(50),
			category_min_price_cents INTEGER,
			category_max_price_cents INTEGER,
			first_order_discount_percent INTEGER NOT NULL DEFAULT 0,
			first_order_discount_note TEXT
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			email VARCHAR(255),
			phone VARCHAR(50),
			stripe_session_id VARCHAR(255),
			total_cents INTEGER NOT NULL CHECK (total_cents >= 0),
			currency VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			bouquet_id VARCHAR(50),
			name VARCHAR(255) NOT NULL,
			price_cents INTEGER NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			image TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			author VARCHAR(255) NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			text TEXT NOT NULL,
			image TEXT,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS promo_slides (
			id VARCHAR(50) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			subtitle VARCHAR(255),
			image TEXT NOT NULL DEFAULT '',
			link TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedBouquets inserts test bouquet data into the database.
func SeedBouquets(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	bouquets := []model.Bouquet{
		{ID: "B001", Name: "Crimson Dozen", PriceCents: 5999, Currency: "usd",
			FlowerType: model.FlowerRose, Style: model.StyleRomantic, Colors: "Red",
			IsActive: true, IsFeatured: true},
		{ID: "B002", Name: "Spring Meadow", PriceCents: 4500, Currency: "usd",
			FlowerType: model.FlowerTulip, Style: model.StyleGarden, Colors: "Yellow,Pink",
			IsMixed: true, IsActive: true},
		{ID: "B003", Name: "White Whisper", PriceCents: 7200, Currency: "usd",
			FlowerType: model.FlowerLily, Style: model.StyleMinimal, Colors: "White",
			IsActive: true, DiscountPercent: 20, DiscountNote: strPtr("Weekly pick")},
		{ID: "B004", Name: "Retired Classic", PriceCents: 3900, Currency: "usd",
			FlowerType: model.FlowerRose, Style: model.StyleModern, Colors: "Red,White",
			IsActive: false},
	}

	for _, b := range bouquets {
		_, err := pool.Exec(ctx,
			`INSERT INTO bouquets (id, name, description, price_cents, currency,
				flower_type, style, colors, is_mixed, is_featured, is_active,
				discount_percent, discount_note, image, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())`,
			b.ID, b.Name, b.Description, b.PriceCents, b.Currency,
			b.FlowerType, b.Style, b.Colors, b.IsMixed, b.IsFeatured, b.IsActive,
			b.DiscountPercent, b.DiscountNote, b.Image,
		)
		if err != nil {
			t.Fatalf("failed to seed bouquet %s: %v", b.ID, err)
		}
	}
}

func strPtr(s string) *string { return &s }

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "reviews", "promo_slides", "store_settings", "bouquets"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
