package handler

import (
	"net/http"

	"bloomcart/internal/model"
	"bloomcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles cart pricing and checkout requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// PriceCart handles POST /api/cart/price requests. The storefront calls this
// whenever the cart drawer opens so totals always reflect current catalogue
// data.
func (h *CheckoutHandler) PriceCart(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	totals, err := h.service.PriceCart(r.Context(), req.Email, req.Items)
	if err != nil {
		writeServiceError(w, err, "failed to price cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Checkout handles POST /api/checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to start checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func parseOrderID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// GetOrder handles GET /api/orders/{id} requests.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve order", h.logger)
		return
	}
	if order == nil {
		writeServiceError(w, model.ErrOrderNotFound, "", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ConfirmPayment handles POST /api/orders/{id}/confirm requests, the return
// leg of the hosted payment session.
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req struct {
		Succeeded bool `json:"succeeded"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.ConfirmPayment(r.Context(), id, req.Succeeded); err != nil {
		writeServiceError(w, err, "failed to confirm payment", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
