package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloomcart/internal/auth"
	"bloomcart/internal/config"
	"bloomcart/internal/database"
	"bloomcart/internal/delivery"
	"bloomcart/internal/handler"
	"bloomcart/internal/repository"
	"bloomcart/internal/router"
	"bloomcart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bloomcart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	bouquetRepo := repository.NewBouquetRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	promoRepo := repository.NewPromotionRepository(pool, logger)

	// Initialize OTP sign-in flow. The log sender stands in until a hosted
	// email provider is wired up.
	limiter := auth.NewRateLimiter(cfg.Email.RequestsPerHour, time.Hour)
	sender := auth.NewLogSender(logger)
	otpManager := auth.NewManager(limiter, sender, logger)

	// Initialize delivery quoting
	geocoder := delivery.NewGoogleGeocoder(cfg.Maps.APIKey, cfg.Maps.BaseURL, logger)
	quoter := delivery.NewQuoter(geocoder, cfg.Maps.BaseAddress, delivery.DefaultTiers, logger)

	// Initialize payment provider. The dev provider fabricates session URLs
	// until the hosted processor is wired up.
	payments := service.NewDevPaymentProvider(cfg.Stripe.SuccessURL, logger)

	// Initialize services
	catalogService := service.NewCatalogService(bouquetRepo, settingsRepo, promoRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, bouquetRepo, settingsRepo, payments, cfg.Store.Currency, logger)
	adminOrderService := service.NewAdminOrderService(orderRepo, cfg.Store.TimeZone, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, cfg.Store.TimeZone, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Delivery: handler.NewDeliveryHandler(quoter, logger),
		Auth:     handler.NewAuthHandler(otpManager, checkoutService, logger),
		Orders:   handler.NewAdminOrderHandler(adminOrderService, logger),
		Settings: handler.NewSettingsHandler(settingsService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Admin.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
