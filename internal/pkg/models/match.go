package models

// Source identifies where a match record came from.
type Source string

const (
	SourceCricAPI     Source = "cricapi"
	SourceSportsDB    Source = "sportsdb"
	SourceAPIFootball Source = "apifootball"
	SourceBallDontLie Source = "balldontlie"
	SourceFirstParty  Source = "firstparty"
)

// ExternalSources lists external providers in merge priority order.
// First-party records always win; among externals earlier sources win.
var ExternalSources = []Source{
	SourceCricAPI,
	SourceSportsDB,
	SourceAPIFootball,
	SourceBallDontLie,
}

// Status is the canonical match status. Every provider's native status
// vocabulary collapses into exactly one of these three values; nothing else
// may reach a consumer.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Match is the canonical, provider-agnostic representation of one sporting
// event. Scores are free text ("245/7 (42.3)", "102", "-"); downstream code
// must not assume a parseable number.
type Match struct {
	ID         string `json:"id"`
	Source     Source `json:"source"`
	Sport      string `json:"sport"`
	Tournament string `json:"tournament,omitempty"`
	Status     Status `json:"status"`
	Venue      string `json:"venue,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeShort  string `json:"home_short,omitempty"`
	AwayShort  string `json:"away_short,omitempty"`
	HomeBadge  string `json:"home_badge,omitempty"`
	AwayBadge  string `json:"away_badge,omitempty"`
	HomeScore  string `json:"home_score"`
	AwayScore  string `json:"away_score"`
	Summary    string `json:"summary,omitempty"`
}

// NoScore is the placeholder used when a provider has not reported a score yet.
const NoScore = "-"

// ChangeEvent is published on the fan-out bus when a match's score or status
// changes between two poll cycles.
type ChangeEvent struct {
	Source Source `json:"source"`
	ID     string `json:"id"`
	Match  Match  `json:"match"`
	// StatusChanged is set when the canonical status itself transitioned,
	// not just the score.
	StatusChanged bool   `json:"status_changed"`
	PrevStatus    Status `json:"prev_status,omitempty"`
}

// Team is a first-party team record surfaced by search.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`
	Sport string `json:"sport,omitempty"`
	Badge string `json:"badge,omitempty"`
}

// Player is a first-party player record surfaced by search.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Series is a first-party tournament/series record surfaced by search.
type Series struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport,omitempty"`
}
