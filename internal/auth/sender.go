package auth

import (
	"context"

	"github.com/rs/zerolog"
)

// EmailSender delivers sign-in codes. The production implementation talks to
// the hosted email provider; it lives outside this module.
type EmailSender interface {
	// SendOTP delivers a one-time passcode to the given address.
	SendOTP(ctx context.Context, email, code string) error
}

// logSender writes codes to the log instead of sending email. Used in
// development and tests.
type logSender struct {
	logger zerolog.Logger
}

// NewLogSender creates an EmailSender that only logs.
func NewLogSender(logger zerolog.Logger) EmailSender {
	return &logSender{logger: logger.With().Str("sender", "log").Logger()}
}

func (s *logSender) SendOTP(_ context.Context, email, code string) error {
	s.logger.Info().Str("email", email).Str("code", code).Msg("otp issued")
	return nil
}
