// Package streetview provides a client for the Google Street View metadata API.
package streetview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/seichi-tools/panotabi/internal/model"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/streetview"
	defaultTimeout = 10 * time.Second
	defaultRadius  = 50
)

// StatusOK is the provider status indicating a panorama was found. Every
// other status (ZERO_RESULTS, REQUEST_DENIED, OVER_QUERY_LIMIT, ...) is a
// normal no-match outcome, not an error.
const StatusOK = "OK"

// Result is the outcome of a metadata lookup. Callers see one of three
// shapes: a found panorama (Found true), a no-match outcome (Found false,
// Status carries the provider status), or an error return covering
// transport failures and malformed responses.
type Result struct {
	Found    bool
	Status   string
	PanoID   string
	Location model.GeoPoint
}

// Client defines the Street View metadata operations.
type Client interface {
	// Metadata looks up the nearest panorama within radius meters of pt.
	Metadata(ctx context.Context, pt model.GeoPoint, radius int) (*Result, error)
}

// Option configures the Street View client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithRateLimit caps outgoing metadata requests at rps requests per second.
// The default client is unthrottled.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Street View metadata client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// metadataResponse is the JSON response from the metadata endpoint.
type metadataResponse struct {
	Status   string  `json:"status"`
	PanoID   string  `json:"pano_id"`
	Location *latLng `json:"location"`
}

type latLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Metadata looks up the nearest panorama within radius meters of pt. The
// provider may return corrected coordinates for the panorama; fields it
// omits fall back to the requested coordinates.
func (c *httpClient) Metadata(ctx context.Context, pt model.GeoPoint, radius int) (*Result, error) {
	if radius <= 0 {
		radius = defaultRadius
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "streetview: rate limit")
	}

	params := url.Values{
		"location": {model.FormatCoord(pt.Lat) + "," + model.FormatCoord(pt.Lng)},
		"key":      {c.apiKey},
		"radius":   {strconv.Itoa(radius)},
	}

	reqURL := c.baseURL + "/metadata?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "streetview: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("streetview: unexpected status %d", resp.StatusCode)
	}

	var parsed metadataResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "streetview: parse response")
	}

	if parsed.Status != StatusOK {
		return &Result{Found: false, Status: parsed.Status}, nil
	}

	if parsed.PanoID == "" {
		return nil, eris.New("streetview: OK response missing pano_id")
	}

	loc := pt
	if parsed.Location != nil {
		if parsed.Location.Lat != nil {
			loc.Lat = *parsed.Location.Lat
		}
		if parsed.Location.Lng != nil {
			loc.Lng = *parsed.Location.Lng
		}
	}

	return &Result{
		Found:    true,
		Status:   parsed.Status,
		PanoID:   parsed.PanoID,
		Location: loc,
	}, nil
}
