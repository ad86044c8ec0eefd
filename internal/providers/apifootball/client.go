package apifootball

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// Client talks to the API-Football v3 REST API, authenticated via the
// x-apisports-key header.
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
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// LiveFixturesURL keys the live fixtures snapshot.
func (c *Client) LiveFixturesURL() string {
	return c.baseURL + "/fixtures?live=all"
}

// TeamSearchURL keys a team search used by background enrichment.
func (c *Client) TeamSearchURL(query string) string {
	return c.baseURL + "/teams?search=" + url.QueryEscape(query)
}

// LiveFixtures fetches all fixtures currently in play.
// GET /fixtures?live=all
func (c *Client) LiveFixtures(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.LiveFixturesURL())
}

// SearchTeams fetches teams matching the query.
// GET /teams?search=...
func (c *Client) SearchTeams(ctx context.Context, query string) ([]byte, error) {
	return c.get(ctx, c.TeamSearchURL(query))
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	return providerutil.Get(ctx, c.client, u, map[string]string{
		"x-apisports-key": c.apiKey,
	})
}
