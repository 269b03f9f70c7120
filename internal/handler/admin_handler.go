package handler

import (
	"net/http"

	"bloomcart/internal/model"
	"bloomcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminOrderHandler handles the admin panel's order views.
type AdminOrderHandler struct {
	service service.AdminOrderService
	logger  zerolog.Logger
}

// NewAdminOrderHandler creates a new admin order handler.
func NewAdminOrderHandler(service service.AdminOrderService, logger zerolog.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin_order").Logger(),
	}
}

// ListByDay handles GET /api/admin/orders/day/{dayKey} requests.
func (h *AdminOrderHandler) ListByDay(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListByDay(r.Context(), chi.URLParam(r, "dayKey"))
	if err != nil {
		writeServiceError(w, err, "failed to list orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Week handles GET /api/admin/orders/week requests. The optional ?start=
// parameter names the week start; without it the current trailing week is
// returned.
func (h *AdminOrderHandler) Week(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Week(r.URL.Query().Get("start")))
}

// MarkRead handles POST /api/admin/orders/{id}/read requests.
func (h *AdminOrderHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to mark order read", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnreadCount handles GET /api/admin/orders/unread requests.
func (h *AdminOrderHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to count unread orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status requests.
func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err, "failed to update order status", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SettingsHandler handles the admin discount configuration.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/admin/settings requests.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to load settings", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Update handles PATCH /api/admin/settings requests.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsUpdate
	if err := decodeJSON(r, &patch); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	settings, err := h.service.Update(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err, "failed to save settings", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
