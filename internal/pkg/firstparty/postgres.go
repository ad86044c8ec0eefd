package firstparty

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/dmarkin/scorestream/internal/pkg/config"
	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

// Ensure PostgresStore implements the collaborator contract
var _ interfaces.FirstPartyStore = (*PostgresStore)(nil)

// PostgresStore reads user-authored matches, teams, players and series from
// PostgreSQL. This core never writes those tables; the presentation layer
// owns them.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg *config.PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const matchColumns = `id, sport, tournament, status, venue, date, time, home_team, away_team, home_short, away_short, home_badge, away_badge, home_score, away_score, summary`

func (s *PostgresStore) FindMatches(ctx context.Context, query string) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE home_team ILIKE '%' || $1 || '%'
		   OR away_team ILIKE '%' || $1 || '%'
		   OR tournament ILIKE '%' || $1 || '%'
		   OR venue ILIKE '%' || $1 || '%'
		   OR summary ILIKE '%' || $1 || '%'
		ORDER BY date DESC, id`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *PostgresStore) ListCurrent(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE status IN ('live', 'upcoming')
		ORDER BY status, date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query current matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *PostgresStore) FindTeams(ctx context.Context, query string) ([]models.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, short, sport, badge
		FROM teams
		WHERE name ILIKE '%' || $1 || '%' OR short ILIKE '%' || $1 || '%'
		ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Short, &t.Sport, &t.Badge); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindPlayers(ctx context.Context, query string) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, team_name, role
		FROM players
		WHERE name ILIKE '%' || $1 || '%' OR team_name ILIKE '%' || $1 || '%'
		ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.TeamName, &p.Role); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindSeries(ctx context.Context, query string) ([]models.Series, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sport
		FROM series
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var out []models.Series
	for rows.Next() {
		var se models.Series
		if err := rows.Scan(&se.ID, &se.Name, &se.Sport); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		out = append(out, se)
	}
	return out, rows.Err()
}

func scanMatches(rows *sql.Rows) ([]models.Match, error) {
	var out []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.Sport, &m.Tournament, &m.Status, &m.Venue, &m.Date, &m.Time,
			&m.HomeTeam, &m.AwayTeam, &m.HomeShort, &m.AwayShort, &m.HomeBadge, &m.AwayBadge,
			&m.HomeScore, &m.AwayScore, &m.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Source = models.SourceFirstParty
		out = append(out, m)
	}
	return out, rows.Err()
}
