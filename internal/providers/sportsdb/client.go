package sportsdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const defaultBaseURL = "https://www.thesportsdb.com"

// Client talks to TheSportsDB JSON API. The key is part of the URL path.
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
	// Endpoint paths below carry the /api/v1/json prefix. A base URL
	// configured with it would double the segment.
	baseURL = strings.TrimSuffix(baseURL, "/api/v1/json")
	if apiKey == "" {
		apiKey = "3" // shared public test key
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// LivescoreURL keys the livescore snapshot for one sport.
func (c *Client) LivescoreURL(sport string) string {
	return fmt.Sprintf("%s/api/v1/json/%s/livescore.php?s=%s", c.baseURL, c.apiKey, url.QueryEscape(sport))
}

// TeamSearchURL keys a team search used by background enrichment.
func (c *Client) TeamSearchURL(query string) string {
	return fmt.Sprintf("%s/api/v1/json/%s/searchteams.php?t=%s", c.baseURL, c.apiKey, url.QueryEscape(query))
}

// Livescore fetches in-play events for one sport.
// GET /api/v1/json/{key}/livescore.php?s=Soccer
func (c *Client) Livescore(ctx context.Context, sport string) ([]byte, error) {
	return providerutil.Get(ctx, c.client, c.LivescoreURL(sport), nil)
}

// SearchTeams fetches teams matching the query.
// GET /api/v1/json/{key}/searchteams.php?t=...
func (c *Client) SearchTeams(ctx context.Context, query string) ([]byte, error) {
	return providerutil.Get(ctx, c.client, c.TeamSearchURL(query), nil)
}
