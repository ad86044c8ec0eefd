package providerutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
)

func TestGet_RateLimitDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), srv.Client(), srv.URL, nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("429 should map to ErrRateLimited, got %v", err)
	}
}

func TestGet_SetsHeaders(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.Client(), srv.URL, map[string]string{"X-Api-Key": "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("header not forwarded, got %q", gotKey)
	}
	if string(body) != `{}` {
		t.Errorf("body = %q", body)
	}
}

func TestFetchCached_FreshSkipsFetch(t *testing.T) {
	c := cache.New(time.Minute, 10)
	c.Set("k", []byte("cached"))

	called := false
	data, err := FetchCached(context.Background(), c, "k", func(ctx context.Context) ([]byte, error) {
		called = true
		return nil, errors.New("should not be called")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("fresh cache entry must not trigger a fetch")
	}
	if string(data) != "cached" {
		t.Errorf("data = %q", data)
	}
}

func TestFetchCached_StaleServedOnFailure(t *testing.T) {
	c := cache.New(time.Millisecond, 10)
	c.Set("k", []byte("stale"))
	time.Sleep(5 * time.Millisecond)

	data, err := FetchCached(context.Background(), c, "k", func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("provider down")
	})
	if err != nil {
		t.Fatalf("stale value should suppress the error, got %v", err)
	}
	if string(data) != "stale" {
		t.Errorf("data = %q, want stale", data)
	}
}

func TestFetchCached_ErrorWithoutCache(t *testing.T) {
	c := cache.New(time.Minute, 10)

	_, err := FetchCached(context.Background(), c, "k", func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("provider down")
	})
	if err == nil {
		t.Fatal("no cache and failed fetch must surface the error")
	}
}

func TestFetchCached_SuccessRefreshes(t *testing.T) {
	c := cache.New(time.Minute, 10)

	data, err := FetchCached(context.Background(), c, "k", func(ctx context.Context) ([]byte, error) {
		return []byte("live"), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "live" {
		t.Errorf("data = %q", data)
	}
	if cached, fresh := c.Get("k"); !fresh || string(cached) != "live" {
		t.Error("successful fetch must populate the cache")
	}
}
