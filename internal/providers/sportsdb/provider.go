package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
	"github.com/dmarkin/scorestream/internal/pkg/config"
	"github.com/dmarkin/scorestream/internal/pkg/models"
	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const providerName = "sportsdb"

// polled sports, in the provider's naming.
var sports = []struct {
	apiName string
	sport   string
}{
	{"Soccer", "football"},
	{"Basketball", "basketball"},
}

type Provider struct {
	client   *Client
	cache    *cache.Cache
	interval time.Duration
}

func NewProvider(cfg *config.Config) *Provider {
	pc := &cfg.Providers.SportsDB
	return &Provider{
		client:   NewClient(pc.BaseURL, pc.APIKey, cfg.Providers.FetchTimeout),
		cache:    cache.New(pc.CacheTTL, cfg.Cache.MaxEntries),
		interval: pc.Interval,
	}
}

func (p *Provider) Name() string            { return providerName }
func (p *Provider) Source() models.Source   { return models.SourceSportsDB }
func (p *Provider) Interval() time.Duration { return p.interval }

// Poll collects livescore snapshots for every polled sport. One sport failing
// does not drop the others; an error is returned only when every sport failed
// and nothing could be served from cache.
func (p *Provider) Poll(ctx context.Context) ([]models.Match, error) {
	var out []models.Match
	var lastErr error
	fetched := 0

	for _, s := range sports {
		s := s
		body, err := providerutil.FetchCached(ctx, p.cache, p.client.LivescoreURL(s.apiName), func(ctx context.Context) ([]byte, error) {
			return p.client.Livescore(ctx, s.apiName)
		})
		if err != nil {
			slog.Warn("Livescore fetch failed", "provider", providerName, "sport", s.apiName, "error", err)
			lastErr = err
			continue
		}
		fetched++

		matches, err := Normalize(body, s.sport)
		if err != nil {
			slog.Warn("Livescore payload unusable", "provider", providerName, "sport", s.apiName, "error", err)
			lastErr = err
			continue
		}
		out = append(out, matches...)
	}

	if fetched == 0 && lastErr != nil {
		return nil, fmt.Errorf("all sports failed: %w", lastErr)
	}
	return out, nil
}

// Enrich warms the team-search cache for a sparse first-party query.
func (p *Provider) Enrich(ctx context.Context, query string) error {
	_, err := providerutil.FetchCached(ctx, p.cache, p.client.TeamSearchURL(query), func(ctx context.Context) ([]byte, error) {
		return p.client.SearchTeams(ctx, query)
	})
	if err != nil {
		return fmt.Errorf("team search: %w", err)
	}
	return nil
}

// Normalize maps a livescore payload to canonical records. A nil events array
// (the provider's way of saying "nothing in play") yields an empty snapshot.
func Normalize(body []byte, sport string) ([]models.Match, error) {
	var resp livescoreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode livescore: %w", err)
	}

	out := make([]models.Match, 0, len(resp.Events))
	for i := range resp.Events {
		raw := &resp.Events[i]
		if raw.IDEvent == "" || raw.HomeTeam == "" || raw.AwayTeam == "" {
			slog.Debug("Skipping malformed sportsdb record", "id", raw.IDEvent)
			continue
		}

		out = append(out, models.Match{
			ID:         raw.IDEvent,
			Source:     models.SourceSportsDB,
			Sport:      sport,
			Tournament: raw.League,
			Status:     MapStatus(raw.Status),
			Venue:      raw.Venue,
			Date:       raw.DateEvent,
			Time:       pickTime(raw),
			HomeTeam:   raw.HomeTeam,
			AwayTeam:   raw.AwayTeam,
			HomeBadge:  raw.HomeBadge,
			AwayBadge:  raw.AwayBadge,
			HomeScore:  orPlaceholder(raw.HomeScore),
			AwayScore:  orPlaceholder(raw.AwayScore),
			Summary:    summaryOf(raw),
		})
	}
	return out, nil
}

// MapStatus collapses TheSportsDB status strings into the canonical enum.
func MapStatus(status string) models.Status {
	s := strings.ToUpper(strings.TrimSpace(status))
	switch s {
	case "", "NS", "NOT STARTED", "TBD", "POST.", "POSTPONED":
		return models.StatusUpcoming
	case "FT", "AET", "PEN", "MATCH FINISHED", "FINISHED", "CANC", "ABD":
		return models.StatusCompleted
	case "1H", "2H", "HT", "ET", "BT", "P", "LIVE", "IN PLAY",
		"Q1", "Q2", "Q3", "Q4", "OT":
		return models.StatusLive
	}
	// Minute markers ("45", "45+2", "87'") also mean in play.
	if s[0] >= '0' && s[0] <= '9' {
		return models.StatusLive
	}
	// A status this mapping has never seen must not promote the match.
	return models.StatusUpcoming
}

func pickTime(raw *rawEvent) string {
	if raw.TimeEvent != "" {
		return raw.TimeEvent
	}
	return raw.EventTimeAlt
}

func summaryOf(raw *rawEvent) string {
	if raw.Progress != "" && raw.Status != "" {
		return raw.Status + " " + raw.Progress
	}
	if raw.Progress != "" {
		return raw.Progress
	}
	return raw.Status
}

func orPlaceholder(score string) string {
	if strings.TrimSpace(score) == "" {
		return models.NoScore
	}
	return score
}
