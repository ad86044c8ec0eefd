package search

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/models"
	"github.com/dmarkin/scorestream/internal/pkg/registry"
)

// Results are the categorized search hits. Each list is independently
// empty-or-populated.
type Results struct {
	Live     []models.Match  `json:"live"`
	Upcoming []models.Match  `json:"upcoming"`
	Finished []models.Match  `json:"finished"`
	Teams    []models.Team   `json:"teams"`
	Players  []models.Player `json:"players"`
	Series   []models.Series `json:"series"`
}

// Service answers queries from local data only: the first-party store and the
// in-memory provider snapshots. When results are sparse it triggers a
// background enrichment fetch against the external providers, which never
// blocks the response - its only effect is a warm cache for the next query.
type Service struct {
	store     interfaces.FirstPartyStore
	registry  *registry.Registry
	enrichers []interfaces.Enricher
	threshold int

	enrichTimeout time.Duration
	enrichments   atomic.Int64
}

func NewService(store interfaces.FirstPartyStore, reg *registry.Registry, enrichers []interfaces.Enricher, threshold int) *Service {
	if threshold <= 0 {
		threshold = 3
	}
	return &Service{
		store:         store,
		registry:      reg,
		enrichers:     enrichers,
		threshold:     threshold,
		enrichTimeout: 30 * time.Second,
	}
}

func (s *Service) Search(ctx context.Context, query string) (Results, error) {
	var res Results
	query = strings.TrimSpace(query)
	if query == "" {
		return res, nil
	}

	matches, err := s.store.FindMatches(ctx, query)
	if err != nil {
		return res, err
	}
	for _, snapshot := range s.registry.External() {
		matches = append(matches, matchSubstring(snapshot, query)...)
	}
	for _, m := range matches {
		switch m.Status {
		case models.StatusLive:
			res.Live = append(res.Live, m)
		case models.StatusCompleted:
			res.Finished = append(res.Finished, m)
		default:
			res.Upcoming = append(res.Upcoming, m)
		}
	}

	if res.Teams, err = s.store.FindTeams(ctx, query); err != nil {
		return res, err
	}
	if res.Players, err = s.store.FindPlayers(ctx, query); err != nil {
		return res, err
	}
	if res.Series, err = s.store.FindSeries(ctx, query); err != nil {
		return res, err
	}

	if s.sparse(&res) {
		s.triggerEnrichment(query)
	}
	return res, nil
}

// EnrichmentsTriggered reports how many background enrichment runs have been
// launched since startup.
func (s *Service) EnrichmentsTriggered() int64 {
	return s.enrichments.Load()
}

func (s *Service) sparse(res *Results) bool {
	counts := []int{
		len(res.Live), len(res.Upcoming), len(res.Finished),
		len(res.Teams), len(res.Players), len(res.Series),
	}
	for _, n := range counts {
		if n < s.threshold {
			return true
		}
	}
	return false
}

// triggerEnrichment warms provider caches in the background. The request
// context is deliberately not used: the response is already on its way and
// the fetches must outlive it.
func (s *Service) triggerEnrichment(query string) {
	if len(s.enrichers) == 0 {
		return
	}
	s.enrichments.Add(1)
	slog.Debug("Search results sparse, triggering background enrichment", "query", query)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.enrichTimeout)
		defer cancel()
		for _, e := range s.enrichers {
			if err := e.Enrich(ctx, query); err != nil {
				slog.Debug("Background enrichment failed", "query", query, "error", err)
			}
		}
	}()
}

func matchSubstring(matches []models.Match, query string) []models.Match {
	q := strings.ToLower(query)
	var out []models.Match
	for _, m := range matches {
		if containsFold(m.HomeTeam, q) || containsFold(m.AwayTeam, q) ||
			containsFold(m.Tournament, q) || containsFold(m.Venue, q) || containsFold(m.Summary, q) {
			out = append(out, m)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
