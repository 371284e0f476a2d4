// Package anitabi provides a client for the anitabi points-of-interest catalog API.
package anitabi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/seichi-tools/panotabi/internal/model"
)

const (
	defaultBaseURL = "https://api.anitabi.cn"
	defaultTimeout = 10 * time.Second

	userAgent = "panotabi/1.0"
)

// Client defines the catalog operations.
type Client interface {
	// Points fetches the points of interest for a catalog work.
	Points(ctx context.Context, workID int) ([]model.CatalogPoint, error)
}

// Option configures the catalog client.
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

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new catalog client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pointsResponse is the JSON response from the catalog points endpoint.
type pointsResponse struct {
	Points []pointItem `json:"points"`
}

type pointItem struct {
	Name string    `json:"name"`
	Geo  []float64 `json:"geo"` // [lat, lng]
}

// Points fetches the points of interest for a catalog work. A malformed
// entry fails the whole fetch: the caller gets either every well-formed
// point of the work or an error.
func (c *httpClient) Points(ctx context.Context, workID int) ([]model.CatalogPoint, error) {
	reqURL := fmt.Sprintf("%s/bangumi/%d/points", c.baseURL, workID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "anitabi: create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "anitabi: fetch points for work %d", workID)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "anitabi: read response for work %d", workID)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("anitabi: unexpected status %d for work %d", resp.StatusCode, workID)
	}

	var parsed pointsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrapf(err, "anitabi: parse response for work %d", workID)
	}

	points := make([]model.CatalogPoint, 0, len(parsed.Points))
	for i, item := range parsed.Points {
		if len(item.Geo) < 2 {
			return nil, eris.Errorf("anitabi: point %d of work %d has malformed geo", i, workID)
		}
		points = append(points, model.CatalogPoint{
			Name: item.Name,
			Geo:  model.GeoPoint{Lat: item.Geo[0], Lng: item.Geo[1]},
		})
	}

	return points, nil
}
