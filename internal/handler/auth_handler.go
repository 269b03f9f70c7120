package handler

import (
	"net/http"
	"strings"
	"time"

	"bloomcart/internal/auth"
	"bloomcart/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles the OTP sign-in flow. A verified code immediately
// returns the customer's order history, which is the only thing sign-in
// unlocks.
type AuthHandler struct {
	manager  *auth.Manager
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(manager *auth.Manager, checkout service.CheckoutService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		manager:  manager,
		checkout: checkout,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// RequestOTP handles POST /api/auth/otp/request requests.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required", h.logger)
		return
	}

	if err := h.manager.Request(r.Context(), req.Email); err != nil {
		writeServiceError(w, err, "failed to send sign-in code", h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// VerifyOTP handles POST /api/auth/otp/verify requests. On success it
// responds with the customer's order history.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}
	if !validEmail(req.Email) || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required", h.logger)
		return
	}

	if err := h.manager.Verify(req.Email, req.Code, time.Now()); err != nil {
		writeServiceError(w, err, "failed to verify code", h.logger)
		return
	}

	orders, err := h.checkout.ListByEmail(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
