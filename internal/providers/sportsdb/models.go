package sportsdb

// livescoreResponse is the envelope of /api/v1/json/{key}/livescore.php.
type livescoreResponse struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	IDEvent       string `json:"idEvent"`
	Sport         string `json:"strSport"`
	League        string `json:"strLeague"`
	HomeTeam      string `json:"strHomeTeam"`
	AwayTeam      string `json:"strAwayTeam"`
	HomeScore     string `json:"intHomeScore"`
	AwayScore     string `json:"intAwayScore"`
	HomeBadge     string `json:"strHomeTeamBadge"`
	AwayBadge     string `json:"strAwayTeamBadge"`
	Status        string `json:"strStatus"`
	Progress      string `json:"strProgress"`
	Venue         string `json:"strVenue"`
	DateEvent     string `json:"dateEvent"`
	TimeEvent     string `json:"strEventTime"`
	EventTimeAlt  string `json:"strTime"`
}
