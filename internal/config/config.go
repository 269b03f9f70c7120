package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Admin    AdminConfig
	Store    StoreConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Maps     MapsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AdminConfig holds back-office authentication configuration.
type AdminConfig struct {
	APIKey string
}

// StoreConfig holds storefront-wide settings that are not part of the
// persisted settings row.
type StoreConfig struct {
	TimeZone string
	Currency string
}

// StripeConfig holds the checkout payment provider configuration.
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// EmailConfig holds OTP email delivery configuration.
type EmailConfig struct {
	APIKey      string
	FromAddress string
	// RequestsPerHour limits OTP requests per email address.
	RequestsPerHour int
}

// MapsConfig holds delivery-quote geocoding configuration.
type MapsConfig struct {
	APIKey      string
	BaseURL     string
	BaseAddress string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "bloomcart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		Store: StoreConfig{
			TimeZone: getEnv("STORE_TIMEZONE", "America/Chicago"),
			Currency: getEnv("STORE_CURRENCY", "USD"),
		},
		Stripe: StripeConfig{
			SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
			SuccessURL: getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/checkout/success"),
			CancelURL:  getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/cart"),
		},
		Email: EmailConfig{
			APIKey:          getEnv("EMAIL_API_KEY", ""),
			FromAddress:     getEnv("EMAIL_FROM", "orders@bloomcart.example"),
			RequestsPerHour: getEnvAsInt("OTP_REQUESTS_PER_HOUR", 5),
		},
		Maps: MapsConfig{
			APIKey:      getEnv("MAPS_API_KEY", ""),
			BaseURL:     getEnv("MAPS_BASE_URL", ""),
			BaseAddress: getEnv("DELIVERY_BASE_ADDRESS", "1995 Hicks Rd, Rolling Meadows, IL 60008, USA"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Admin.APIKey == "" {
		return fmt.Errorf("admin API key is required")
	}

	if _, err := time.LoadLocation(c.Store.TimeZone); err != nil {
		return fmt.Errorf("invalid store timezone: %s", c.Store.TimeZone)
	}

	if c.Email.RequestsPerHour < 1 {
		return fmt.Errorf("OTP requests per hour must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
