package router

import (
	"net/http"

	"bloomcart/internal/handler"
	"bloomcart/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Checkout *handler.CheckoutHandler
	Review   *handler.ReviewHandler
	Delivery *handler.DeliveryHandler
	Auth     *handler.AuthHandler
	Orders   *handler.AdminOrderHandler
	Settings *handler.SettingsHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Storefront routes are public; everything under /api/admin requires the
// admin key.
func New(h Handlers, adminKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.Catalog.List)
		r.Get("/featured", h.Catalog.Featured)
		r.Get("/bouquets/{id}", h.Catalog.GetByID)
		r.Get("/promotions", h.Catalog.Promotions)

		r.Post("/cart/price", h.Checkout.PriceCart)
		r.Post("/checkout", h.Checkout.Checkout)
		r.Get("/orders/{id}", h.Checkout.GetOrder)
		r.Post("/orders/{id}/confirm", h.Checkout.ConfirmPayment)

		r.Get("/reviews", h.Review.List)
		r.Post("/reviews", h.Review.Submit)

		r.Post("/delivery/quote", h.Delivery.Quote)

		r.Post("/auth/otp/request", h.Auth.RequestOTP)
		r.Post("/auth/otp/verify", h.Auth.VerifyOTP)

		// Admin back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminKeyAuth(adminKey, logger))

			r.Get("/orders/week", h.Orders.Week)
			r.Get("/orders/unread", h.Orders.UnreadCount)
			r.Get("/orders/day/{dayKey}", h.Orders.ListByDay)
			r.Post("/orders/{id}/read", h.Orders.MarkRead)
			r.Patch("/orders/{id}/status", h.Orders.UpdateStatus)

			r.Get("/settings", h.Settings.Get)
			r.Patch("/settings", h.Settings.Update)

			r.Get("/bouquets", h.Catalog.AdminList)
			r.Post("/bouquets", h.Catalog.Create)
			r.Put("/bouquets/{id}", h.Catalog.Update)
			r.Patch("/bouquets/{id}/active", h.Catalog.SetActive)

			r.Get("/promotions", h.Catalog.AdminPromotions)
			r.Post("/promotions", h.Catalog.CreatePromotion)
			r.Put("/promotions/{id}", h.Catalog.UpdatePromotion)
			r.Delete("/promotions/{id}", h.Catalog.DeletePromotion)

			r.Get("/reviews", h.Review.AdminList)
			r.Patch("/reviews/{id}/approve", h.Review.SetApproved)
			r.Delete("/reviews/{id}", h.Review.Delete)
		})
	})

	return r
}
