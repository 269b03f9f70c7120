package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bloomcart/internal/model"

	"github.com/rs/zerolog"
)

// Manager orchestrates the OTP sign-in flow: throttle, issue, deliver,
// verify. Pending codes live in memory only; a restart simply forces
// customers to request a fresh code.
type Manager struct {
	mu      sync.Mutex
	pending map[string]OTP
	limiter *RateLimiter
	sender  EmailSender
	logger  zerolog.Logger
}

// NewManager creates an OTP manager.
func NewManager(limiter *RateLimiter, sender EmailSender, logger zerolog.Logger) *Manager {
	return &Manager{
		pending: make(map[string]OTP),
		limiter: limiter,
		sender:  sender,
		logger:  logger.With().Str("service", "auth").Logger(),
	}
}

// Request issues a code for the email and hands it to the sender. A second
// request before the first code is used replaces it.
func (m *Manager) Request(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	now := time.Now()

	if !m.limiter.Allow(email, now) {
		m.logger.Warn().Str("email", email).Msg("otp request rate limited")
		return model.ErrRateLimited
	}
	m.limiter.Prune(now)

	otp, err := GenerateOTP(now)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to generate otp")
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	m.mu.Lock()
	m.pending[email] = otp
	m.mu.Unlock()

	if err := m.sender.SendOTP(ctx, email, otp.Code); err != nil {
		m.logger.Error().Err(err).Str("email", email).Msg("failed to send otp")
		return fmt.Errorf("failed to send otp: %w", err)
	}

	m.logger.Info().Str("email", email).Time("expires_at", otp.ExpiresAt).Msg("otp issued")
	return nil
}

// Verify checks a candidate code. A code can be used at most once: both a
// successful verification and an expired code remove the pending entry.
func (m *Manager) Verify(email, code string, now time.Time) error {
	email = normalizeEmail(email)

	m.mu.Lock()
	defer m.mu.Unlock()

	otp, ok := m.pending[email]
	if !ok {
		return model.ErrInvalidOTP
	}

	if now.After(otp.ExpiresAt) {
		delete(m.pending, email)
		m.logger.Debug().Str("email", email).Msg("otp expired")
		return model.ErrOTPExpired
	}

	if !VerifyOTP(code, otp.Salt, otp.Hash) {
		m.logger.Warn().Str("email", email).Msg("otp mismatch")
		return model.ErrInvalidOTP
	}

	delete(m.pending, email)
	m.logger.Info().Str("email", email).Msg("otp verified")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
