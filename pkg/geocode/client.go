// Package geocode resolves free-text place names to coordinates through the
// Nominatim API, with rate limiting and an optional local result cache.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves a location query to coordinates.
type Client interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Result is a resolved location.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	Matched     bool    `json:"matched"`
}

// Cache stores geocode results keyed by normalized query hash. Both matches
// and non-matches are cached.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, error)
	Put(ctx context.Context, key string, result *Result) error
}

// Option configures the client.
type Option func(*nominatimClient)

// WithBaseURL overrides the default Nominatim endpoint.
func WithBaseURL(u string) Option {
	return func(c *nominatimClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *nominatimClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy
// requires an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *nominatimClient) {
		c.userAgent = ua
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *nominatimClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithCache attaches a result cache.
func WithCache(cache Cache) Option {
	return func(c *nominatimClient) {
		c.cache = cache
	}
}

type nominatimClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	cache     Cache
}

// NewClient creates a Nominatim geocoding client. The default rate limit of
// one request per second matches the public instance's usage policy.
func NewClient(opts ...Option) Client {
	c := &nominatimClient{
		baseURL:   defaultBaseURL,
		userAgent: "geomarket/1.0",
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(1, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// nominatimPlace is one entry of the Nominatim search response. Coordinates
// come back as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *nominatimClient) Geocode(ctx context.Context, query string) (*Result, error) {
	key := cacheKey(query)

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	result := &Result{Matched: false}
	if len(places) > 0 {
		lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
		lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
		if latErr != nil || lonErr != nil {
			return nil, eris.Errorf("geocode: bad coordinates %q,%q", places[0].Lat, places[0].Lon)
		}
		result = &Result{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: places[0].DisplayName,
			Matched:     true,
		}
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, result); err != nil {
			zap.L().Debug("geocode: cache store failed", zap.Error(err))
		}
	}
	return result, nil
}
