package cricapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const defaultBaseURL = "https://api.cricapi.com"

// Client talks to the CricAPI REST API. The free tier allows only a small
// number of calls per day, so every endpoint goes through the shared cache.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	// Endpoint paths below carry the /v1 prefix. A base URL configured with
	// it would double the segment.
	baseURL = strings.TrimSuffix(baseURL, "/v1")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// CurrentMatchesURL is also the cache key for the bulk snapshot endpoint.
func (c *Client) CurrentMatchesURL() string {
	return fmt.Sprintf("%s/v1/currentMatches?apikey=%s&offset=0", c.baseURL, c.apiKey)
}

// SeriesSearchURL keys the series search used by background enrichment.
func (c *Client) SeriesSearchURL(query string) string {
	return fmt.Sprintf("%s/v1/series?apikey=%s&search=%s", c.baseURL, c.apiKey, url.QueryEscape(query))
}

// CurrentMatches fetches the bulk fixtures snapshot.
// GET /v1/currentMatches?apikey=...&offset=0
func (c *Client) CurrentMatches(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.CurrentMatchesURL())
}

// SearchSeries fetches series matching the query.
// GET /v1/series?apikey=...&search=...
func (c *Client) SearchSeries(ctx context.Context, query string) ([]byte, error) {
	return c.get(ctx, c.SeriesSearchURL(query))
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	body, err := providerutil.Get(ctx, c.client, u, nil)
	if err != nil {
		return nil, err
	}
	// CricAPI reports quota exhaustion inside a 200 response.
	var probe struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Status == "failure" {
		if strings.Contains(strings.ToLower(probe.Message), "hits") {
			return nil, providerutil.ErrRateLimited
		}
		return nil, fmt.Errorf("api failure: %s", probe.Message)
	}
	return body, nil
}
