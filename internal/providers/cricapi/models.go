package cricapi

// currentMatchesResponse is the envelope of /v1/currentMatches.
type currentMatchesResponse struct {
	Status  string     `json:"status"`
	Data    []rawMatch `json:"data"`
	Info    apiInfo    `json:"info"`
	Message string     `json:"message,omitempty"`
}

type apiInfo struct {
	HitsToday int `json:"hitsToday"`
	HitsLimit int `json:"hitsLimit"`
}

type rawMatch struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MatchType   string     `json:"matchType"`
	Status      string     `json:"status"`
	Venue       string     `json:"venue"`
	Date        string     `json:"date"`
	DateTimeGMT string     `json:"dateTimeGMT"`
	Teams       []string   `json:"teams"`
	TeamInfo    []teamInfo `json:"teamInfo"`
	Score       []inning   `json:"score"`
	SeriesID    string     `json:"series_id"`
	MatchStart  bool       `json:"matchStarted"`
	MatchEnded  bool       `json:"matchEnded"`
}

type teamInfo struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
	Img       string `json:"img"`
}

type inning struct {
	Runs    float64 `json:"r"`
	Wickets float64 `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}
