package firstparty

import (
	"context"
	"strings"
	"sync"

	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

var _ interfaces.FirstPartyStore = (*MemoryStore)(nil)

// MemoryStore is the in-memory first-party store, used in tests and when no
// Postgres DSN is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	matches []models.Match
	teams   []models.Team
	players []models.Player
	series  []models.Series
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed replaces the store contents. Matches are stamped as first-party.
func (s *MemoryStore) Seed(matches []models.Match, teams []models.Team, players []models.Player, series []models.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = make([]models.Match, len(matches))
	copy(s.matches, matches)
	for i := range s.matches {
		s.matches[i].Source = models.SourceFirstParty
	}
	s.teams = append([]models.Team(nil), teams...)
	s.players = append([]models.Player(nil), players...)
	s.series = append([]models.Series(nil), series...)
}

func (s *MemoryStore) FindMatches(ctx context.Context, query string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Match
	for _, m := range s.matches {
		if containsFold(m.HomeTeam, q) || containsFold(m.AwayTeam, q) ||
			containsFold(m.Tournament, q) || containsFold(m.Venue, q) || containsFold(m.Summary, q) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListCurrent(ctx context.Context) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Match
	for _, m := range s.matches {
		if m.Status == models.StatusLive || m.Status == models.StatusUpcoming {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindTeams(ctx context.Context, query string) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Team
	for _, t := range s.teams {
		if containsFold(t.Name, q) || containsFold(t.Short, q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindPlayers(ctx context.Context, query string) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Player
	for _, p := range s.players {
		if containsFold(p.Name, q) || containsFold(p.TeamName, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindSeries(ctx context.Context, query string) ([]models.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Series
	for _, se := range s.series {
		if containsFold(se.Name, q) {
			out = append(out, se)
		}
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
