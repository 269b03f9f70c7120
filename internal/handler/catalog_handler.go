package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"bloomcart/internal/model"
	"bloomcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler handles storefront and admin catalogue requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// parseCatalogFilter builds the AND-combined filter from query parameters.
// Unknown enum values are dropped rather than rejected, matching how the
// storefront links are shared around.
func parseCatalogFilter(q url.Values) model.CatalogFilter {
	var filter model.CatalogFilter

	if ft, ok := model.ParseFlowerType(q.Get("flower")); ok {
		filter.FlowerType = ft
	}
	if st, ok := model.ParseBouquetStyle(q.Get("style")); ok {
		filter.Style = st
	}
	if mixed := q.Get("mixed"); mixed == "mixed" || mixed == "mono" {
		filter.Mixed = mixed
	}
	filter.Color = q.Get("color")

	if v, err := strconv.Atoi(q.Get("minPrice")); err == nil {
		filter.MinPriceCents = &v
	}
	if v, err := strconv.Atoi(q.Get("maxPrice")); err == nil {
		filter.MaxPriceCents = &v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}
	filter.FeaturedOnly = q.Get("featured") == "true"

	return filter
}

// List handles GET /api/catalog requests.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	bouquets, err := h.service.ListBouquets(r.Context(), parseCatalogFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve catalogue", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bouquets)
}

// GetByID handles GET /api/bouquets/{id} requests.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bouquet ID is required", h.logger)
		return
	}

	bouquet, err := h.service.GetBouquet(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve bouquet", h.logger)
		return
	}
	if bouquet == nil {
		writeServiceError(w, model.ErrBouquetNotFound, "", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bouquet)
}

// Featured handles GET /api/featured requests.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	bouquets, err := h.service.ListFeatured(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve featured bouquets", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bouquets)
}

// Promotions handles GET /api/promotions requests.
func (h *CatalogHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.ListPromoSlides(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve promotions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, slides)
}

// AdminList handles GET /api/admin/bouquets requests.
func (h *CatalogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	bouquets, err := h.service.ListAllBouquets(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve bouquets", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bouquets)
}

// Create handles POST /api/admin/bouquets requests.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b model.Bouquet
	if err := decodeJSON(r, &b); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.CreateBouquet(r.Context(), &b); err != nil {
		writeServiceError(w, err, "failed to create bouquet", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/admin/bouquets/{id} requests.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var b model.Bouquet
	if err := decodeJSON(r, &b); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}
	b.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateBouquet(r.Context(), &b); err != nil {
		writeServiceError(w, err, "failed to update bouquet", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// SetActive handles PATCH /api/admin/bouquets/{id}/active requests.
func (h *CatalogHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.SetBouquetActive(r.Context(), id, req.Active); err != nil {
		writeServiceError(w, err, "failed to toggle bouquet", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// AdminPromotions handles GET /api/admin/promotions requests.
func (h *CatalogHandler) AdminPromotions(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.ListAllPromoSlides(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve promotions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, slides)
}

// CreatePromotion handles POST /api/admin/promotions requests.
func (h *CatalogHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var p model.PromoSlide
	if err := decodeJSON(r, &p); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	if err := h.service.CreatePromoSlide(r.Context(), &p); err != nil {
		writeServiceError(w, err, "failed to create promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// UpdatePromotion handles PUT /api/admin/promotions/{id} requests.
func (h *CatalogHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	var p model.PromoSlide
	if err := decodeJSON(r, &p); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := h.service.UpdatePromoSlide(r.Context(), &p); err != nil {
		writeServiceError(w, err, "failed to update promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// DeletePromotion handles DELETE /api/admin/promotions/{id} requests.
func (h *CatalogHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePromoSlide(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "failed to delete promotion", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
