package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/cache"
	"github.com/dmarkin/scorestream/internal/pkg/config"
	"github.com/dmarkin/scorestream/internal/pkg/models"
	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
)

const providerName = "apifootball"

type Provider struct {
	client   *Client
	cache    *cache.Cache
	interval time.Duration
}

func NewProvider(cfg *config.Config) *Provider {
	pc := &cfg.Providers.APIFootball
	return &Provider{
		client:   NewClient(pc.BaseURL, pc.APIKey, cfg.Providers.FetchTimeout),
		cache:    cache.New(pc.CacheTTL, cfg.Cache.MaxEntries),
		interval: pc.Interval,
	}
}

func (p *Provider) Name() string            { return providerName }
func (p *Provider) Source() models.Source   { return models.SourceAPIFootball }
func (p *Provider) Interval() time.Duration { return p.interval }

func (p *Provider) Poll(ctx context.Context) ([]models.Match, error) {
	body, err := providerutil.FetchCached(ctx, p.cache, p.client.LiveFixturesURL(), func(ctx context.Context) ([]byte, error) {
		return p.client.LiveFixtures(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("live fixtures: %w", err)
	}
	return Normalize(body)
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

// Normalize maps the fixtures payload to canonical records.
func Normalize(body []byte) ([]models.Match, error) {
	var resp fixturesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	out := make([]models.Match, 0, len(resp.Response))
	for i := range resp.Response {
		raw := &resp.Response[i]
		if raw.Fixture.ID == 0 || raw.Teams.Home.Name == "" || raw.Teams.Away.Name == "" {
			slog.Debug("Skipping malformed apifootball record", "id", raw.Fixture.ID)
			continue
		}

		date, clock := splitDate(raw.Fixture.Date)
		out = append(out, models.Match{
			ID:         strconv.FormatInt(raw.Fixture.ID, 10),
			Source:     models.SourceAPIFootball,
			Sport:      "football",
			Tournament: raw.League.Name,
			Status:     MapStatus(raw.Fixture.Status.Short),
			Venue:      raw.Fixture.Venue.Name,
			Date:       date,
			Time:       clock,
			HomeTeam:   raw.Teams.Home.Name,
			AwayTeam:   raw.Teams.Away.Name,
			HomeBadge:  raw.Teams.Home.Logo,
			AwayBadge:  raw.Teams.Away.Logo,
			HomeScore:  scoreText(raw.Goals.Home),
			AwayScore:  scoreText(raw.Goals.Away),
			Summary:    summaryOf(raw),
		})
	}
	return out, nil
}

// MapStatus collapses API-Football short status codes to the canonical enum.
func MapStatus(short string) models.Status {
	switch strings.ToUpper(strings.TrimSpace(short)) {
	case "", "NS", "TBD", "PST":
		return models.StatusUpcoming
	case "FT", "AET", "PEN", "CANC", "ABD", "AWD", "WO":
		return models.StatusCompleted
	case "1H", "HT", "2H", "ET", "BT", "P", "SUSP", "INT", "LIVE":
		return models.StatusLive
	default:
		return models.StatusUpcoming
	}
}

func scoreText(goals *int) string {
	if goals == nil {
		return models.NoScore
	}
	return strconv.Itoa(*goals)
}

func summaryOf(raw *rawFixture) string {
	if raw.Fixture.Status.Elapsed != nil {
		return fmt.Sprintf("%s (%d')", raw.Fixture.Status.Long, *raw.Fixture.Status.Elapsed)
	}
	return raw.Fixture.Status.Long
}

// splitDate separates the provider's ISO timestamp into display date and time.
func splitDate(iso string) (string, string) {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.Format("2006-01-02"), t.Format("15:04")
	}
	return iso, ""
}
