package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloomcart/internal/auth"
	"bloomcart/internal/delivery"
	"bloomcart/internal/handler"
	"bloomcart/internal/model"
	"bloomcart/internal/repository"
	"bloomcart/internal/router"
	"bloomcart/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	bouquetRepo := repository.NewBouquetRepository(testDB.Pool, logger)
	settingsRepo := repository.NewSettingsRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)
	promoRepo := repository.NewPromotionRepository(testDB.Pool, logger)

	// OTP flow with a generous limit so tests never trip it
	limiter := auth.NewRateLimiter(100, time.Hour)
	otpManager := auth.NewManager(limiter, auth.NewLogSender(logger), logger)

	// Delivery quoting against the stub geocoder path is not exercised here;
	// the quoter still needs wiring for the route to exist.
	geocoder := delivery.NewGoogleGeocoder("", "", logger)
	quoter := delivery.NewQuoter(geocoder, "100 Main St, Springfield", delivery.DefaultTiers, logger)

	payments := service.NewDevPaymentProvider("http://localhost/thanks", logger)

	// Initialize services
	catalogService := service.NewCatalogService(bouquetRepo, settingsRepo, promoRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, bouquetRepo, settingsRepo, payments, "usd", logger)
	adminOrderService := service.NewAdminOrderService(orderRepo, "UTC", logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, "UTC", logger)

	handlers := router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Delivery: handler.NewDeliveryHandler(quoter, logger),
		Auth:     handler.NewAuthHandler(otpManager, checkoutService, logger),
		Orders:   handler.NewAdminOrderHandler(adminOrderService, logger),
		Settings: handler.NewSettingsHandler(settingsService, logger),
	}

	return router.New(handlers, "test-admin-key", logger)
}

func TestCatalogAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/catalog returns active bouquets with pricing", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var bouquets []service.PricedBouquet
		require.NoError(t, json.NewDecoder(w.Body).Decode(&bouquets))
		assert.Len(t, bouquets, 3)
	})

	t.Run("GET /api/catalog applies per-bouquet discount", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/catalog?flower=LILY", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var bouquets []service.PricedBouquet
		require.NoError(t, json.NewDecoder(w.Body).Decode(&bouquets))
		require.Len(t, bouquets, 1)
		assert.Equal(t, 7200, bouquets[0].Pricing.OriginalPriceCents)
		assert.Equal(t, 5760, bouquets[0].Pricing.FinalPriceCents)
	})

	t.Run("GET /api/bouquets/{id} returns 404 for missing bouquet", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/bouquets/B999", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCheckoutAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	postJSON := func(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		return w
	}

	t.Run("POST /api/checkout creates a pending order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		email := "anna@example.com"
		w := postJSON(t, "/api/checkout", &model.CheckoutRequest{
			Email: &email,
			Items: []model.CartItem{{BouquetID: "B001", Quantity: 2}},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp model.CheckoutResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 11998, resp.TotalCents)
		assert.NotEmpty(t, resp.PaymentURL)

		// Retrieve the order through the public endpoint
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+resp.OrderID.String(), nil)
		getW := httptest.NewRecorder()
		server.ServeHTTP(getW, req)

		assert.Equal(t, http.StatusOK, getW.Code)

		var order model.OrderResponse
		require.NoError(t, json.NewDecoder(getW.Body).Decode(&order))
		assert.Equal(t, model.OrderPending, order.Order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 5999, order.Items[0].PriceCents)
	})

	t.Run("POST /api/checkout ignores client-supplied prices", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		w := postJSON(t, "/api/checkout", map[string]any{
			"items": []map[string]any{
				{"bouquetId": "B002", "quantity": 1, "basePriceCents": 1},
			},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp model.CheckoutResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 4500, resp.TotalCents)
	})

	t.Run("POST /api/checkout rejects inactive bouquet", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		w := postJSON(t, "/api/checkout", &model.CheckoutRequest{
			Items: []model.CartItem{{BouquetID: "B004", Quantity: 1}},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /api/cart/price rejects empty cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := postJSON(t, "/api/cart/price", &model.CheckoutRequest{Items: []model.CartItem{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeEmptyCart, resp.Error)
	})
}

func TestAdminAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("admin routes require the admin key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/unread", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /api/admin/orders/unread counts new orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		body, err := json.Marshal(&model.CheckoutRequest{
			Items: []model.CartItem{{BouquetID: "B001", Quantity: 1}},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/admin/orders/unread", nil)
		req.Header.Set("X-Admin-Key", "test-admin-key")
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]int
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp["unread"])
	})

	t.Run("PATCH /api/admin/settings activates a global discount", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBouquets(t, testDB.Pool)

		body := []byte(`{"globalDiscountPercent":10,"globalDiscountNote":"Fall sale"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/settings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", "test-admin-key")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		// Catalogue pricing now reflects the discount
		req = httptest.NewRequest(http.MethodGet, "/api/catalog?flower=TULIP", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var bouquets []service.PricedBouquet
		require.NoError(t, json.NewDecoder(w.Body).Decode(&bouquets))
		require.Len(t, bouquets, 1)
		assert.Equal(t, 4050, bouquets[0].Pricing.FinalPriceCents)
	})

	t.Run("PATCH rejects global and category discounts together", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := []byte(`{"globalDiscountPercent":10,"globalDiscountNote":"A",
			"categoryDiscountPercent":20,"categoryDiscountNote":"B","categoryFlowerType":"ROSE"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/settings", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", "test-admin-key")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeDiscountConflict, resp.Error)
	})
}

func TestReviewAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("submitted reviews stay hidden until approved", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := []byte(`{"author":"Anna","rating":5,"text":"Stunning roses, my mum loved them."}`)
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Review
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.False(t, created.IsApproved)

		// Public list is still empty
		req = httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var public []model.Review
		require.NoError(t, json.NewDecoder(w.Body).Decode(&public))
		assert.Empty(t, public)

		// Approve through the admin endpoint
		req = httptest.NewRequest(http.MethodPatch,
			"/api/admin/reviews/"+created.ID.String()+"/approve",
			bytes.NewBufferString(`{"approved":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", "test-admin-key")
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&public))
		assert.Len(t, public, 1)
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/catalog", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}
