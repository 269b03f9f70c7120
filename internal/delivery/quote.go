// Package delivery quotes delivery fees for customer addresses. Fees are
// tiered by road distance from the shop; distances come from a distance
// matrix provider behind the Geocoder interface.
package delivery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bloomcart/internal/format"
	"bloomcart/internal/model"

	"github.com/rs/zerolog"
)

// Tier maps a maximum distance in miles to a flat fee.
type Tier struct {
	MaxMiles float64
	FeeCents int
}

// DefaultTiers is the shop's delivery fee schedule. Addresses beyond the
// last tier are not deliverable.
var DefaultTiers = []Tier{
	{MaxMiles: 10, FeeCents: 0},
	{MaxMiles: 20, FeeCents: 1500},
	{MaxMiles: 30, FeeCents: 3000},
}

// Quote is a successful delivery quote. FeeDisplay is the fee pre-rendered
// for the storefront banner.
type Quote struct {
	Miles            float64 `json:"miles"`
	DistanceText     string  `json:"distanceText"`
	FeeCents         int     `json:"feeCents"`
	FeeDisplay       string  `json:"feeDisplay"`
	BaseAddress      string  `json:"baseAddress"`
	FormattedAddress string  `json:"formattedAddress"`
}

// Distance is what the Geocoder reports for a validated address.
type Distance struct {
	Miles            float64
	DistanceText     string
	FormattedAddress string
}

// Geocoder validates an address and measures its road distance from the
// shop's base address. The production implementation calls the hosted maps
// API; it is injected so quoting stays testable offline.
type Geocoder interface {
	Measure(ctx context.Context, baseAddress, address string) (Distance, error)
}

var digitRe = regexp.MustCompile(`\d`)

// ValidateAddressFormat runs cheap shape checks before spending a geocoding
// call: a minimum length, a street number and a city/state separator.
func ValidateAddressFormat(address string) error {
	trimmed := strings.TrimSpace(address)

	if len(trimmed) < 10 {
		return model.NewDomainError(model.ErrCodeInvalidAddress,
			"Address is too short. Please provide a complete address.")
	}
	if !digitRe.MatchString(trimmed) {
		return model.NewDomainError(model.ErrCodeInvalidAddress,
			"Please include a street number.")
	}
	if !strings.Contains(trimmed, ",") {
		return model.NewDomainError(model.ErrCodeInvalidAddress,
			"Please provide a complete address with city and state (e.g., 123 Main St, Chicago, IL).")
	}

	return nil
}

// FeeForMiles resolves a distance against the tier table. The second return
// is false when the distance is beyond the last tier.
func FeeForMiles(tiers []Tier, miles float64) (int, bool) {
	for _, tier := range tiers {
		if miles <= tier.MaxMiles {
			return tier.FeeCents, true
		}
	}
	return 0, false
}

// Quoter turns addresses into delivery quotes.
type Quoter struct {
	geocoder    Geocoder
	baseAddress string
	tiers       []Tier
	logger      zerolog.Logger
}

// NewQuoter creates a quoter over the given geocoder and fee schedule.
func NewQuoter(geocoder Geocoder, baseAddress string, tiers []Tier, logger zerolog.Logger) *Quoter {
	return &Quoter{
		geocoder:    geocoder,
		baseAddress: baseAddress,
		tiers:       tiers,
		logger:      logger.With().Str("service", "delivery").Logger(),
	}
}

// QuoteAddress validates the address, measures its distance and resolves the
// fee tier.
func (q *Quoter) QuoteAddress(ctx context.Context, address string) (*Quote, error) {
	if err := ValidateAddressFormat(address); err != nil {
		return nil, err
	}

	distance, err := q.geocoder.Measure(ctx, q.baseAddress, address)
	if err != nil {
		q.logger.Error().Err(err).Msg("failed to measure delivery distance")
		return nil, fmt.Errorf("failed to quote delivery: %w", err)
	}

	fee, ok := FeeForMiles(q.tiers, distance.Miles)
	if !ok {
		q.logger.Debug().
			Float64("miles", distance.Miles).
			Msg("address outside delivery range")
		return nil, model.ErrOutOfDeliveryRange
	}

	return &Quote{
		Miles:            distance.Miles,
		DistanceText:     distance.DistanceText,
		FeeCents:         fee,
		FeeDisplay:       format.Money(fee),
		BaseAddress:      q.baseAddress,
		FormattedAddress: distance.FormattedAddress,
	}, nil
}
