package handler

import (
	"net/http"

	"bloomcart/internal/model"
	"bloomcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewHandler handles public review submission and admin moderation.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// List handles GET /api/reviews requests.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListApproved(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Submit handles POST /api/reviews requests.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var review model.Review
	if err := decodeJSON(r, &review); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.Submit(r.Context(), &review); err != nil {
		writeServiceError(w, err, "failed to submit review", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// AdminList handles GET /api/admin/reviews requests. An optional ?day=
// parameter narrows the listing to one calendar day.
func (h *ReviewHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	var (
		reviews []model.Review
		err     error
	)

	if day := r.URL.Query().Get("day"); day != "" {
		reviews, err = h.service.ListByDay(r.Context(), day)
	} else {
		reviews, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

func parseReviewID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// SetApproved handles PATCH /api/admin/reviews/{id}/approve requests.
func (h *ReviewHandler) SetApproved(w http.ResponseWriter, r *http.Request) {
	id, ok := parseReviewID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid review ID format", h.logger)
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.SetApproved(r.Context(), id, req.Approved); err != nil {
		writeServiceError(w, err, "failed to moderate review", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseReviewID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid review ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete review", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
