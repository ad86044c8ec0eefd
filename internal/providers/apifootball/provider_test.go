package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

const samplePayload = `{
	"results": 2,
	"response": [
		{
			"fixture": {
				"id": 1035045,
				"date": "2026-03-12T19:45:00+00:00",
				"status": {"long": "Second Half", "short": "2H", "elapsed": 67},
				"venue": {"name": "Anfield", "city": "Liverpool"}
			},
			"league": {"name": "Premier League", "country": "England", "round": "Regular Season - 28"},
			"teams": {
				"home": {"name": "Liverpool", "logo": "https://img/liv.png"},
				"away": {"name": "Manchester City", "logo": "https://img/mci.png"}
			},
			"goals": {"home": 2, "away": 2}
		},
		{
			"fixture": {"id": 0, "status": {"short": "1H"}},
			"teams": {"home": {"name": "Broken"}, "away": {"name": ""}},
			"goals": {}
		}
	]
}`

func TestNormalize(t *testing.T) {
	matches, err := Normalize([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1 (malformed record skipped)", len(matches))
	}

	m := matches[0]
	if m.ID != "1035045" || m.Source != models.SourceAPIFootball || m.Sport != "football" {
		t.Errorf("identity fields wrong: %+v", m)
	}
	if m.Status != models.StatusLive {
		t.Errorf("status = %q, want live", m.Status)
	}
	if m.HomeScore != "2" || m.AwayScore != "2" {
		t.Errorf("scores = %q/%q", m.HomeScore, m.AwayScore)
	}
	if m.Date != "2026-03-12" || m.Time != "19:45" {
		t.Errorf("date/time = %q/%q", m.Date, m.Time)
	}
	if m.Summary != "Second Half (67')" {
		t.Errorf("summary = %q", m.Summary)
	}
}

func TestNormalize_NilGoalsPlaceholder(t *testing.T) {
	payload := `{"response":[{"fixture":{"id":5,"date":"bad-date","status":{"short":"NS"}},"teams":{"home":{"name":"A"},"away":{"name":"B"}},"goals":{"home":null,"away":null}}]}`
	matches, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].HomeScore != models.NoScore || matches[0].AwayScore != models.NoScore {
		t.Errorf("nil goals should become placeholder, got %q/%q", matches[0].HomeScore, matches[0].AwayScore)
	}
	// Unparseable date passes through for display.
	if matches[0].Date != "bad-date" {
		t.Errorf("date = %q", matches[0].Date)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		short    string
		expected models.Status
	}{
		{"NS", models.StatusUpcoming},
		{"TBD", models.StatusUpcoming},
		{"PST", models.StatusUpcoming},
		{"1H", models.StatusLive},
		{"HT", models.StatusLive},
		{"2H", models.StatusLive},
		{"ET", models.StatusLive},
		{"SUSP", models.StatusLive},
		{"FT", models.StatusCompleted},
		{"AET", models.StatusCompleted},
		{"PEN", models.StatusCompleted},
		{"ABD", models.StatusCompleted},
		{"made-up-code", models.StatusUpcoming},
	}
	for _, tt := range tests {
		if got := MapStatus(tt.short); got != tt.expected {
			t.Errorf("MapStatus(%q) = %q, want %q", tt.short, got, tt.expected)
		}
	}
}

func TestPoll_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-apisports-key")
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	p := &Provider{
		client:   NewClient(srv.URL, "secret", time.Second),
		cache:    cache.New(time.Minute, 16),
		interval: time.Minute,
	}

	matches, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q, want secret", gotKey)
	}
	if len(matches) != 1 {
		t.Errorf("got %d matches, want 1", len(matches))
	}
}
