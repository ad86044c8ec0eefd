package sportsdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

func newTestCache() *cache.Cache {
	return cache.New(time.Minute, 16)
}

const samplePayload = `{
	"events": [
		{
			"idEvent": "602129",
			"strSport": "Soccer",
			"strLeague": "Premier League",
			"strHomeTeam": "Arsenal",
			"strAwayTeam": "Chelsea",
			"intHomeScore": "2",
			"intAwayScore": "1",
			"strHomeTeamBadge": "https://img/arsenal.png",
			"strAwayTeamBadge": "https://img/chelsea.png",
			"strStatus": "2H",
			"strProgress": "71",
			"strVenue": "Emirates Stadium",
			"dateEvent": "2026-03-12",
			"strEventTime": "19:45:00"
		},
		{
			"idEvent": "",
			"strHomeTeam": "Ghost",
			"strAwayTeam": "Record"
		},
		{
			"idEvent": "602130",
			"strHomeTeam": "Everton",
			"strAwayTeam": "Fulham",
			"intHomeScore": "",
			"intAwayScore": "",
			"strStatus": "NS"
		}
	]
}`

func TestNormalize(t *testing.T) {
	matches, err := Normalize([]byte(samplePayload), "football")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (record without id skipped)", len(matches))
	}

	m := matches[0]
	if m.ID != "602129" || m.Source != models.SourceSportsDB || m.Sport != "football" {
		t.Errorf("identity fields wrong: %+v", m)
	}
	if m.Status != models.StatusLive {
		t.Errorf("status = %q, want live", m.Status)
	}
	if m.HomeScore != "2" || m.AwayScore != "1" {
		t.Errorf("scores = %q/%q", m.HomeScore, m.AwayScore)
	}
	if m.HomeBadge != "https://img/arsenal.png" {
		t.Errorf("badge not mapped: %q", m.HomeBadge)
	}
	if m.Summary != "2H 71" {
		t.Errorf("summary = %q", m.Summary)
	}

	if matches[1].Status != models.StatusUpcoming {
		t.Errorf("NS status = %q, want upcoming", matches[1].Status)
	}
	if matches[1].HomeScore != models.NoScore {
		t.Errorf("empty score should become %q, got %q", models.NoScore, matches[1].HomeScore)
	}
}

func TestNormalize_NullEvents(t *testing.T) {
	matches, err := Normalize([]byte(`{"events": null}`), "football")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("null events should produce an empty snapshot, got %d", len(matches))
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected models.Status
	}{
		{"NS", models.StatusUpcoming},
		{"Not Started", models.StatusUpcoming},
		{"", models.StatusUpcoming},
		{"FT", models.StatusCompleted},
		{"Match Finished", models.StatusCompleted},
		{"AET", models.StatusCompleted},
		{"1H", models.StatusLive},
		{"HT", models.StatusLive},
		{"Q3", models.StatusLive},
		{"45+2", models.StatusLive},
		{"87'", models.StatusLive},
		// Unknown vocabulary defaults to the safe state, not live.
		{"WEATHER DELAY", models.StatusUpcoming},
		{"???", models.StatusUpcoming},
	}
	for _, tt := range tests {
		if got := MapStatus(tt.status); got != tt.expected {
			t.Errorf("MapStatus(%q) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestPoll_OneSportFailingKeepsOther(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") == "Basketball" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	p := &Provider{
		client:   NewClient(srv.URL, "testkey", time.Second),
		cache:    newTestCache(),
		interval: time.Minute,
	}

	matches, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not fail the poll: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches from the healthy sport, want 2", len(matches))
	}
}

func TestPoll_AllFailedNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &Provider{
		client:   NewClient(srv.URL, "testkey", time.Second),
		cache:    newTestCache(),
		interval: time.Minute,
	}

	if _, err := p.Poll(context.Background()); err == nil {
		t.Error("all sports failed with a cold cache: Poll must return an error")
	}
}
