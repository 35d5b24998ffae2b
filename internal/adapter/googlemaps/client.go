package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"

	// searchRadiusMeters bounds biased place searches; wide enough to cover a
	// metro area without pulling in same-named places a state away.
	searchRadiusMeters = 25000

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// Client implements domain.PlacesAPI using the Google Maps web services:
// Places search, Place details, Geocoding, and Time Zone.
type Client struct {
	keys       *KeySource
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics

	warned sync.Map // operation -> struct{}, dedups missing-key warnings
}

// NewClient creates a Google Maps client.
func NewClient(keys *KeySource, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		keys: keys,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// PlaceSearch runs a nearby or text search. A missing API key degrades to
// empty results so the pipeline keeps flowing without enrichment.
func (c *Client) PlaceSearch(ctx context.Context, query string, bias *domain.LatLng, mode domain.SearchMode) ([]domain.SearchCandidate, error) {
	op := string(mode)
	key, err := c.keys.Key()
	if err != nil {
		c.warnMissingKey(op, err)
		return nil, nil
	}

	params := url.Values{"key": {key}}
	if mode == domain.SearchNearby {
		params.Set("keyword", query)
	} else {
		params.Set("query", query)
	}
	if bias != nil {
		params.Set("location", formatLatLng(*bias))
		params.Set("radius", strconv.Itoa(searchRadiusMeters))
	}

	var resp searchResponse
	if err := c.get(ctx, fmt.Sprintf("%s/place/%s/json", c.baseURL, op), params, op, &resp); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	results, err := c.searchCandidates(op, resp)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Geocode converts a free-text address to candidate places.
func (c *Client) Geocode(ctx context.Context, address string) ([]domain.SearchCandidate, error) {
	const op = "geocode"
	key, err := c.keys.Key()
	if err != nil {
		c.warnMissingKey(op, err)
		return nil, nil
	}

	params := url.Values{
		"key":     {key},
		"address": {address},
	}

	var resp searchResponse
	if err := c.get(ctx, c.baseURL+"/geocode/json", params, op, &resp); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	return c.searchCandidates(op, resp)
}

// PlaceDetails fetches the detailed record behind a place id. A place that
// has disappeared from the provider returns (nil, nil).
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	const op = "details"
	key, err := c.keys.Key()
	if err != nil {
		c.warnMissingKey(op, err)
		return nil, nil
	}

	params := url.Values{
		"key":      {key},
		"place_id": {placeID},
	}

	var resp detailsResponse
	if err := c.get(ctx, c.baseURL+"/place/details/json", params, op, &resp); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults, statusNotFound:
		c.metrics.PlacesRequests.WithLabelValues(op, "empty").Inc()
		return nil, nil
	default:
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, apiStatusError(op, resp.Status, resp.ErrorMessage)
	}

	var result detailsResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("decode place details: %w", err)
	}

	c.metrics.PlacesRequests.WithLabelValues(op, "success").Inc()
	return &domain.PlaceDetails{
		FormattedAddress:  result.FormattedAddress,
		AddressComponents: result.AddressComponents,
		Raw:               resp.Result,
	}, nil
}

// TimezoneLookup resolves coordinates to an IANA timezone id.
func (c *Client) TimezoneLookup(ctx context.Context, loc domain.LatLng) (string, error) {
	const op = "timezone"
	key, err := c.keys.Key()
	if err != nil {
		c.warnMissingKey(op, err)
		return "", nil
	}

	params := url.Values{
		"key":       {key},
		"location":  {formatLatLng(loc)},
		"timestamp": {strconv.FormatInt(time.Now().Unix(), 10)},
	}

	var resp timezoneResponse
	if err := c.get(ctx, c.baseURL+"/timezone/json", params, op, &resp); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return "", err
	}

	switch resp.Status {
	case statusOK:
		c.metrics.PlacesRequests.WithLabelValues(op, "success").Inc()
		return resp.TimeZoneID, nil
	case statusZeroResults:
		c.metrics.PlacesRequests.WithLabelValues(op, "empty").Inc()
		return "", nil
	default:
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return "", apiStatusError(op, resp.Status, resp.ErrorMessage)
	}
}

func (c *Client) searchCandidates(op string, resp searchResponse) ([]domain.SearchCandidate, error) {
	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		c.metrics.PlacesRequests.WithLabelValues(op, "empty").Inc()
		return nil, nil
	default:
		c.metrics.PlacesRequests.WithLabelValues(op, "error").Inc()
		return nil, apiStatusError(op, resp.Status, resp.ErrorMessage)
	}

	c.metrics.PlacesRequests.WithLabelValues(op, "success").Inc()
	candidates := make([]domain.SearchCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, r.toCandidate())
	}
	return candidates, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, op string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	timer := prometheus.NewTimer(c.metrics.PlacesAPIDuration.WithLabelValues(op))
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration()
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google maps API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) warnMissingKey(op string, err error) {
	if _, loaded := c.warned.LoadOrStore(op, struct{}{}); !loaded {
		c.logger.Warn("places provider disabled, returning empty results", "operation", op, "error", err)
	}
	c.metrics.PlacesRequests.WithLabelValues(op, "empty").Inc()
}

func apiStatusError(op, status, message string) error {
	if message != "" {
		return fmt.Errorf("%s API status %s: %s", op, status, message)
	}
	return fmt.Errorf("%s API status %s", op, status)
}

func formatLatLng(l domain.LatLng) string {
	return fmt.Sprintf("%f,%f", l.Lat, l.Lng)
}

// Google Maps API response types.

type searchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID           string                    `json:"place_id"`
	Name              string                    `json:"name"`
	FormattedAddress  string                    `json:"formatted_address"`
	Vicinity          string                    `json:"vicinity"`
	Geometry          *geometry                 `json:"geometry"`
	Types             []string                  `json:"types"`
	AddressComponents []domain.AddressComponent `json:"address_components"`
}

type geometry struct {
	Location coordinates `json:"location"`
}

type coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r placeResult) toCandidate() domain.SearchCandidate {
	c := domain.SearchCandidate{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Types:            r.Types,
	}
	// Nearby search responses carry vicinity instead of a formatted address.
	if c.FormattedAddress == "" {
		c.FormattedAddress = r.Vicinity
	}
	if r.Geometry != nil {
		c.Location = &domain.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
	}
	return c
}

type detailsResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Result       json.RawMessage `json:"result"`
}

type detailsResult struct {
	FormattedAddress  string                    `json:"formatted_address"`
	AddressComponents []domain.AddressComponent `json:"address_components"`
}

type timezoneResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	TimeZoneID   string `json:"timeZoneId"`
}
