package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Defaults for the public OpenStreetMap instance.
const (
	DefaultEndpoint  = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent = "astralyogi"
)

// Nominatim resolves cities with an OpenStreetMap Nominatim search
// endpoint. Requests are limited to one per second.
type Nominatim struct {
	endpoint  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NominatimOption configures a Nominatim client.
type NominatimOption func(*Nominatim)

// WithEndpoint overrides the search URL.
func WithEndpoint(u string) NominatimOption {
	return func(n *Nominatim) { n.endpoint = u }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) NominatimOption {
	return func(n *Nominatim) { n.userAgent = ua }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(n *Nominatim) { n.client = c }
}

// WithLimiter replaces the request limiter.
func WithLimiter(l *rate.Limiter) NominatimOption {
	return func(n *Nominatim) { n.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) NominatimOption {
	return func(n *Nominatim) { n.logger = l }
}

// NewNominatim creates a client for the public instance unless overridden.
func NewNominatim(opts ...NominatimOption) *Nominatim {
	n := &Nominatim{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve implements Resolver.
func (n *Nominatim) Resolve(ctx context.Context, city string) (Location, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return Location{}, fmt.Errorf("geocode: waiting for rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("geocode: building request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := n.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocode: %s: %w", city, err)
	}
	defer resp.Body.Close()

	n.logger.Debug("nominatim lookup",
		zap.String("city", city),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Location{}, fmt.Errorf("geocode: %s: status %d: %s", city, resp.StatusCode, body)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Location{}, fmt.Errorf("geocode: decoding response: %w", err)
	}
	if len(places) == 0 {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, city)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocode: latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocode: longitude %q: %w", places[0].Lon, err)
	}
	return Location{Name: city, Latitude: lat, Longitude: lon}, nil
}
