package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bloomcart/internal/model"

	"github.com/rs/zerolog"
)

const metersPerMile = 1609.344

// googleGeocoder measures distances through the Google Distance Matrix API.
type googleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGoogleGeocoder creates a Geocoder backed by the Google Distance Matrix
// API. baseURL is overridable so tests can point it at a local server.
func NewGoogleGeocoder(apiKey, baseURL string, logger zerolog.Logger) Geocoder {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	return &googleGeocoder{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With().Str("client", "google_maps").Logger(),
	}
}

type distanceMatrixResponse struct {
	Status               string   `json:"status"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Meters int    `json:"value"`
				Text   string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (g *googleGeocoder) Measure(ctx context.Context, baseAddress, address string) (Distance, error) {
	params := url.Values{}
	params.Set("origins", baseAddress)
	params.Set("destinations", address)
	params.Set("units", "imperial")
	params.Set("key", g.apiKey)

	endpoint := g.baseURL + "/maps/api/distancematrix/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Distance{}, fmt.Errorf("failed to build distance matrix request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Distance{}, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Distance{}, fmt.Errorf("distance matrix returned status %d", resp.StatusCode)
	}

	var body distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Distance{}, fmt.Errorf("failed to decode distance matrix response: %w", err)
	}

	if body.Status != "OK" || len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		g.logger.Warn().Str("status", body.Status).Msg("distance matrix lookup failed")
		return Distance{}, model.ErrInvalidAddress
	}

	element := body.Rows[0].Elements[0]
	if element.Status != "OK" {
		g.logger.Debug().Str("element_status", element.Status).Msg("address not routable")
		return Distance{}, model.ErrInvalidAddress
	}

	formatted := address
	if len(body.DestinationAddresses) > 0 && body.DestinationAddresses[0] != "" {
		formatted = body.DestinationAddresses[0]
	}

	return Distance{
		Miles:            float64(element.Distance.Meters) / metersPerMile,
		DistanceText:     element.Distance.Text,
		FormattedAddress: formatted,
	}, nil
}
