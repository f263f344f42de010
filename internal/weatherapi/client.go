// Package weatherapi is the HTTP client for the weather service under test.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"wqa/internal/config"
)

// Client calls the OpenWeatherMap-style API. Each worker owns its own
// Client (and http.Client) so no connection or cookie state is shared
// across parallel cases.
type Client struct {
	http    *http.Client
	baseURL string
	geoURL  string
	apiKey  string
	units   string
	log     *zap.Logger
}

// New creates a Client from the run configuration.
func New(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: cfg.APIBaseURL,
		geoURL:  cfg.GeoBaseURL,
		apiKey:  cfg.APIKey,
		units:   cfg.Units,
		log:     log,
	}
}

// Option adjusts the query of a single request.
type Option func(url.Values)

// WithUnits overrides the measurement system (metric, imperial, standard).
func WithUnits(units string) Option {
	return func(q url.Values) { q.Set("units", units) }
}

// WithParam sets an arbitrary query parameter.
func WithParam(key, value string) Option {
	return func(q url.Values) { q.Set(key, value) }
}

// CurrentByCity returns current weather for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string, opts ...Option) (*Observation, error) {
	q := url.Values{}
	q.Set("q", city)
	var obs Observation
	if err := c.get(ctx, c.baseURL+"/weather", q, opts, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}

// CurrentByCoords returns current weather for geographical coordinates.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64, opts ...Option) (*Observation, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var obs Observation
	if err := c.get(ctx, c.baseURL+"/weather", q, opts, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}

// CurrentByID returns current weather for an OpenWeatherMap city ID.
func (c *Client) CurrentByID(ctx context.Context, cityID int, opts ...Option) (*Observation, error) {
	q := url.Values{}
	q.Set("id", strconv.Itoa(cityID))
	var obs Observation
	if err := c.get(ctx, c.baseURL+"/weather", q, opts, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}

// Forecast returns the 5-day / 3-hour forecast for a city.
func (c *Client) Forecast(ctx context.Context, city string, opts ...Option) (*Forecast, error) {
	q := url.Values{}
	q.Set("q", city)
	var fc Forecast
	if err := c.get(ctx, c.baseURL+"/forecast", q, opts, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// SearchCities resolves city names through the geocoding endpoint.
func (c *Client) SearchCities(ctx context.Context, query string, limit int) ([]GeoResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	var results []GeoResult
	if err := c.get(ctx, c.geoURL+"/direct", q, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, opts []Option, out any) error {
	q.Set("appid", c.apiKey)
	if q.Get("units") == "" {
		q.Set("units", c.units)
	}
	for _, opt := range opts {
		opt(q)
	}

	reqURL := endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("weather API response",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Cod     any    `json:"cod"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = fmt.Sprint(payload.Cod)
		apiErr.Message = payload.Message
	}
	return apiErr
}

// APIError is a non-200 response from the weather service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather API returned status %d: %s", e.StatusCode, e.Message)
}
