package balldontlie

// gamesResponse is the envelope of /v1/games.
type gamesResponse struct {
	Data []rawGame `json:"data"`
}

type rawGame struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Datetime    string  `json:"datetime"`
	Season      int     `json:"season"`
	Status      string  `json:"status"`
	Period      int     `json:"period"`
	Time        string  `json:"time"`
	Postseason  bool    `json:"postseason"`
	HomeTeam    rawTeam `json:"home_team"`
	VisitorTeam rawTeam `json:"visitor_team"`
	HomeScore   int     `json:"home_team_score"`
	VisitorScore int    `json:"visitor_team_score"`
}

type rawTeam struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}
