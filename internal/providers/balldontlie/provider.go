package balldontlie

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

const providerName = "balldontlie"

type Provider struct {
	client   *Client
	cache    *cache.Cache
	interval time.Duration

	// now is injectable for tests; games are fetched for today's date.
	now func() time.Time
}

func NewProvider(cfg *config.Config) *Provider {
	pc := &cfg.Providers.BallDontLie
	return &Provider{
		client:   NewClient(pc.BaseURL, pc.APIKey, cfg.Providers.FetchTimeout),
		cache:    cache.New(pc.CacheTTL, cfg.Cache.MaxEntries),
		interval: pc.Interval,
		now:      time.Now,
	}
}

func (p *Provider) Name() string            { return providerName }
func (p *Provider) Source() models.Source   { return models.SourceBallDontLie }
func (p *Provider) Interval() time.Duration { return p.interval }

func (p *Provider) Poll(ctx context.Context) ([]models.Match, error) {
	date := p.now().UTC().Format("2006-01-02")
	body, err := providerutil.FetchCached(ctx, p.cache, p.client.GamesURL(date), func(ctx context.Context) ([]byte, error) {
		return p.client.GamesByDate(ctx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("games by date: %w", err)
	}
	return Normalize(body)
}

// Normalize maps the games payload to canonical records.
func Normalize(body []byte) ([]models.Match, error) {
	var resp gamesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	out := make([]models.Match, 0, len(resp.Data))
	for i := range resp.Data {
		raw := &resp.Data[i]
		if raw.ID == 0 || raw.HomeTeam.FullName == "" || raw.VisitorTeam.FullName == "" {
			slog.Debug("Skipping malformed balldontlie record", "id", raw.ID)
			continue
		}

		status := MapStatus(raw.Status, raw.Period)
		m := models.Match{
			ID:         strconv.FormatInt(raw.ID, 10),
			Source:     models.SourceBallDontLie,
			Sport:      "basketball",
			Tournament: seasonName(raw.Season, raw.Postseason),
			Status:     status,
			Date:       raw.Date,
			Time:       raw.Datetime,
			HomeTeam:   raw.HomeTeam.FullName,
			AwayTeam:   raw.VisitorTeam.FullName,
			HomeShort:  raw.HomeTeam.Abbreviation,
			AwayShort:  raw.VisitorTeam.Abbreviation,
			HomeScore:  models.NoScore,
			AwayScore:  models.NoScore,
			Summary:    summaryOf(raw),
		}
		if status != models.StatusUpcoming {
			m.HomeScore = strconv.Itoa(raw.HomeScore)
			m.AwayScore = strconv.Itoa(raw.VisitorScore)
		}
		out = append(out, m)
	}
	return out, nil
}

// MapStatus collapses balldontlie's status field. The field carries either
// "Final", an in-play marker ("1st Qtr", "Halftime"), or the scheduled tipoff
// time for games that have not started (period 0).
func MapStatus(status string, period int) models.Status {
	s := strings.ToLower(strings.TrimSpace(status))
	if strings.HasPrefix(s, "final") {
		return models.StatusCompleted
	}
	if period > 0 {
		return models.StatusLive
	}
	return models.StatusUpcoming
}

func seasonName(season int, postseason bool) string {
	name := fmt.Sprintf("NBA %d-%d", season, (season+1)%100)
	if postseason {
		name += " Playoffs"
	}
	return name
}

func summaryOf(raw *rawGame) string {
	if raw.Time != "" {
		return raw.Status + " " + raw.Time
	}
	return raw.Status
}
