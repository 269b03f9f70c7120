package service

import (
	"context"
	"fmt"

	"bloomcart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentProvider opens hosted payment sessions. The production
// implementation talks to the payment processor; it lives outside this
// module.
type PaymentProvider interface {
	// CreateSession opens a payment session for the order and returns its ID
	// and the URL the customer should be redirected to.
	CreateSession(ctx context.Context, order *model.Order, items []model.OrderItem) (sessionID, url string, err error)
}

// devPaymentProvider fabricates session URLs instead of calling a payment
// processor. Used in development and tests.
type devPaymentProvider struct {
	successURL string
	logger     zerolog.Logger
}

// NewDevPaymentProvider creates a PaymentProvider that only pretends to
// charge. Every session immediately points at the success URL.
func NewDevPaymentProvider(successURL string, logger zerolog.Logger) PaymentProvider {
	return &devPaymentProvider{
		successURL: successURL,
		logger:     logger.With().Str("payment", "dev").Logger(),
	}
}

func (p *devPaymentProvider) CreateSession(_ context.Context, order *model.Order, items []model.OrderItem) (string, string, error) {
	sessionID := "dev_" + uuid.NewString()
	url := fmt.Sprintf("%s?order_id=%s", p.successURL, order.ID)

	p.logger.Info().
		Str("order_id", order.ID.String()).
		Str("session_id", sessionID).
		Int("item_count", len(items)).
		Int("total_cents", order.TotalCents).
		Msg("dev payment session opened")

	return sessionID, url, nil
}
