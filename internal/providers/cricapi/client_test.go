package cricapi

import (
	"testing"
	"time"
)

func TestClientURLComposition(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"default", ""},
		{"bare host", "https://api.cricapi.com"},
		{"trailing slash", "https://api.cricapi.com/"},
		{"path prefix in config", "https://api.cricapi.com/v1"},
		{"path prefix with slash", "https://api.cricapi.com/v1/"},
	}

	const want = "https://api.cricapi.com/v1/currentMatches?apikey=k&offset=0"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.base, "k", time.Second)
			if got := c.CurrentMatchesURL(); got != want {
				t.Errorf("CurrentMatchesURL() = %q, want %q", got, want)
			}
		})
	}
}

func TestClientSeriesSearchURLEscapesQuery(t *testing.T) {
	c := NewClient("", "k", time.Second)
	want := "https://api.cricapi.com/v1/series?apikey=k&search=big+bash"
	if got := c.SeriesSearchURL("big bash"); got != want {
		t.Errorf("SeriesSearchURL() = %q, want %q", got, want)
	}
}
