package cricapi

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

const providerName = "cricapi"

// terminalStatuses mark a cricket match as finished. Matching is by
// substring: CricAPI statuses read like "Australia won by 5 wickets".
var terminalStatuses = []string{"won", "drawn", "abandoned", "tied", "no result"}

type Provider struct {
	client   *Client
	cache    *cache.Cache
	interval time.Duration

	// second is an optional Redis level behind the in-process cache. The
	// daily quota is small enough that losing warm entries on restart hurts.
	second *cache.RedisCache
}

func NewProvider(cfg *config.Config) *Provider {
	pc := &cfg.Providers.CricAPI
	return &Provider{
		client:   NewClient(pc.BaseURL, pc.APIKey, cfg.Providers.FetchTimeout),
		cache:    cache.New(pc.CacheTTL, cfg.Cache.MaxEntries),
		interval: pc.Interval,
	}
}

// WithSecondLevel attaches a Redis cache consulted on in-process misses.
func (p *Provider) WithSecondLevel(rc *cache.RedisCache) *Provider {
	p.second = rc
	return p
}

func (p *Provider) Name() string            { return providerName }
func (p *Provider) Source() models.Source   { return models.SourceCricAPI }
func (p *Provider) Interval() time.Duration { return p.interval }

func (p *Provider) fetch(ctx context.Context, key string, do func(context.Context) ([]byte, error)) ([]byte, error) {
	return providerutil.FetchCached(ctx, p.cache, key, func(ctx context.Context) ([]byte, error) {
		if p.second != nil {
			if data, ok := p.second.Get(ctx, key); ok {
				return data, nil
			}
		}
		body, err := do(ctx)
		if err != nil {
			return nil, err
		}
		if p.second != nil {
			if serr := p.second.Set(ctx, key, body); serr != nil {
				slog.Warn("Second-level cache write failed", "provider", providerName, "error", serr)
			}
		}
		return body, nil
	})
}

// Poll fetches current matches through the cache and normalizes them.
func (p *Provider) Poll(ctx context.Context) ([]models.Match, error) {
	body, err := p.fetch(ctx, p.client.CurrentMatchesURL(), p.client.CurrentMatches)
	if err != nil {
		return nil, fmt.Errorf("current matches: %w", err)
	}
	return Normalize(body)
}

// Enrich warms the series-search cache for a sparse first-party query.
func (p *Provider) Enrich(ctx context.Context, query string) error {
	_, err := p.fetch(ctx, p.client.SeriesSearchURL(query), func(ctx context.Context) ([]byte, error) {
		return p.client.SearchSeries(ctx, query)
	})
	if err != nil {
		return fmt.Errorf("series search: %w", err)
	}
	return nil
}

// Normalize maps the raw currentMatches payload to canonical records.
// Records missing an id or a pair of teams are skipped, never the batch.
func Normalize(body []byte) ([]models.Match, error) {
	var resp currentMatchesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode current matches: %w", err)
	}

	out := make([]models.Match, 0, len(resp.Data))
	for i := range resp.Data {
		raw := &resp.Data[i]
		if raw.ID == "" || len(raw.Teams) < 2 {
			slog.Debug("Skipping malformed cricapi record", "id", raw.ID, "teams", len(raw.Teams))
			continue
		}

		home, away := raw.Teams[0], raw.Teams[1]
		m := models.Match{
			ID:         raw.ID,
			Source:     models.SourceCricAPI,
			Sport:      "cricket",
			Tournament: raw.Name,
			Status:     MapStatus(raw.Status, raw.MatchStart, raw.MatchEnded),
			Venue:      raw.Venue,
			Date:       raw.Date,
			Time:       raw.DateTimeGMT,
			HomeTeam:   home,
			AwayTeam:   away,
			HomeScore:  scoreFor(raw.Score, home),
			AwayScore:  scoreFor(raw.Score, away),
			Summary:    raw.Status,
		}
		for _, ti := range raw.TeamInfo {
			switch ti.Name {
			case home:
				m.HomeShort = ti.ShortName
				m.HomeBadge = ti.Img
			case away:
				m.AwayShort = ti.ShortName
				m.AwayBadge = ti.Img
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// MapStatus collapses CricAPI's free-text status into the canonical enum.
// Unknown strings default to upcoming.
func MapStatus(status string, started, ended bool) models.Status {
	s := strings.ToLower(strings.TrimSpace(status))
	if ended {
		return models.StatusCompleted
	}
	for _, terminal := range terminalStatuses {
		if strings.Contains(s, terminal) {
			return models.StatusCompleted
		}
	}
	if s == "" || s == "match not started" {
		return models.StatusUpcoming
	}
	if started {
		return models.StatusLive
	}
	return models.StatusUpcoming
}

// scoreFor renders a team's innings as display text, e.g. "245/7 (42.3)".
// Multiple innings are joined with " & ". "-" when nothing is reported yet.
func scoreFor(innings []inning, team string) string {
	var parts []string
	for _, in := range innings {
		if !strings.HasPrefix(strings.ToLower(in.Inning), strings.ToLower(team)) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d/%d (%s)", int(in.Runs), int(in.Wickets), formatOvers(in.Overs)))
	}
	if len(parts) == 0 {
		return models.NoScore
	}
	return strings.Join(parts, " & ")
}

func formatOvers(overs float64) string {
	s := fmt.Sprintf("%.1f", overs)
	return strings.TrimSuffix(s, ".0")
}
