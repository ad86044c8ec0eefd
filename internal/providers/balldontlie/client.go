package balldontlie

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const defaultBaseURL = "https://api.balldontlie.io"

// Client talks to the balldontlie NBA API, authenticated via the
// Authorization header.
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

// GamesURL keys the games-by-date snapshot.
func (c *Client) GamesURL(date string) string {
	return c.baseURL + "/v1/games?dates[]=" + date
}

// GamesByDate fetches all games scheduled for one date (YYYY-MM-DD).
// GET /v1/games?dates[]=...
func (c *Client) GamesByDate(ctx context.Context, date string) ([]byte, error) {
	return providerutil.Get(ctx, c.client, c.GamesURL(date), map[string]string{
		"Authorization": c.apiKey,
	})
}
