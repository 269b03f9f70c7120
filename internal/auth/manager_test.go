package auth

import (
	"context"
	"testing"
	"time"

	"bloomcart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSender records the last code handed to it.
type captureSender struct {
	email string
	code  string
	err   error
}

func (s *captureSender) SendOTP(_ context.Context, email, code string) error {
	s.email = email
	s.code = code
	return s.err
}

func newTestManager(limit int) (*Manager, *captureSender) {
	sender := &captureSender{}
	limiter := NewRateLimiter(limit, time.Hour)
	return NewManager(limiter, sender, zerolog.Nop()), sender
}

func TestManager_RequestAndVerify(t *testing.T) {
	m, sender := newTestManager(5)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, " Anna@Example.com "))
	assert.Equal(t, "anna@example.com", sender.email)
	assert.Regexp(t, `^\d{6}$`, sender.code)

	// Address is normalised on both sides of the flow
	require.NoError(t, m.Verify("ANNA@example.com", sender.code, time.Now()))

	// A code is single use
	err := m.Verify("anna@example.com", sender.code, time.Now())
	assert.Equal(t, model.ErrInvalidOTP, err)
}

func TestManager_Verify_WrongCode(t *testing.T) {
	m, sender := newTestManager(5)

	require.NoError(t, m.Request(context.Background(), "anna@example.com"))

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}
	err := m.Verify("anna@example.com", wrong, time.Now())
	assert.Equal(t, model.ErrInvalidOTP, err)

	// A failed attempt does not consume the code
	assert.NoError(t, m.Verify("anna@example.com", sender.code, time.Now()))
}

func TestManager_Verify_Expired(t *testing.T) {
	m, sender := newTestManager(5)

	require.NoError(t, m.Request(context.Background(), "anna@example.com"))

	err := m.Verify("anna@example.com", sender.code, time.Now().Add(OTPTTL+time.Minute))
	assert.Equal(t, model.ErrOTPExpired, err)

	// The expired entry is gone; even the right code at a valid time fails now
	err = m.Verify("anna@example.com", sender.code, time.Now())
	assert.Equal(t, model.ErrInvalidOTP, err)
}

func TestManager_Request_RateLimited(t *testing.T) {
	m, _ := newTestManager(2)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "anna@example.com"))
	require.NoError(t, m.Request(ctx, "anna@example.com"))

	err := m.Request(ctx, "anna@example.com")
	assert.Equal(t, model.ErrRateLimited, err)

	// Other addresses are unaffected
	assert.NoError(t, m.Request(ctx, "ben@example.com"))
}

func TestManager_Request_ReplacesPendingCode(t *testing.T) {
	m, sender := newTestManager(5)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "anna@example.com"))
	first := sender.code
	require.NoError(t, m.Request(ctx, "anna@example.com"))

	if first != sender.code {
		err := m.Verify("anna@example.com", first, time.Now())
		assert.Equal(t, model.ErrInvalidOTP, err)
	}
	assert.NoError(t, m.Verify("anna@example.com", sender.code, time.Now()))
}
