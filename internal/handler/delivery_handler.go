package handler

import (
	"net/http"

	"bloomcart/internal/delivery"

	"github.com/rs/zerolog"
)

// DeliveryHandler handles delivery quote requests.
type DeliveryHandler struct {
	quoter *delivery.Quoter
	logger zerolog.Logger
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(quoter *delivery.Quoter, logger zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		quoter: quoter,
		logger: logger.With().Str("handler", "delivery").Logger(),
	}
}

// Quote handles POST /api/delivery/quote requests.
func (h *DeliveryHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	quote, err := h.quoter.QuoteAddress(r.Context(), req.Address)
	if err != nil {
		writeServiceError(w, err, "failed to quote delivery", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
