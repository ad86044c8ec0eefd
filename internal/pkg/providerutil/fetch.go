package providerutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
)

// ErrRateLimited marks a fetch rejected by the provider's quota. It is
// handled like any transport error but logged distinctly, so operators can
// tell "provider down" from "quota exhausted".
var ErrRateLimited = errors.New("provider rate limited")

// UserAgent is sent with every provider request. Overridden at startup from
// config when set.
var UserAgent = "scorestream/1.0"

// Get performs one bounded HTTP GET and returns the response body. The
// caller's context carries the timeout.
func Get(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FetchCached serves the request from the cache when fresh, otherwise fetches
// and stores. When the fetch fails and a stale value exists, the stale value
// is served: availability over freshness while a provider is degraded.
func FetchCached(ctx context.Context, c *cache.Cache, key string, fetch func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if data, fresh := c.Get(key); fresh {
		return data, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		if stale, _ := c.Get(key); stale != nil {
			if errors.Is(err, ErrRateLimited) {
				slog.Warn("Provider quota exhausted, serving stale cache", "key", key)
			} else {
				slog.Warn("Fetch failed, serving stale cache", "key", key, "error", err)
			}
			return stale, nil
		}
		return nil, err
	}

	c.Set(key, data)
	return data, nil
}
