package apifootball

// fixturesResponse is the envelope of /fixtures.
type fixturesResponse struct {
	Errors   interface{}  `json:"errors"`
	Results  int          `json:"results"`
	Response []rawFixture `json:"response"`
}

type rawFixture struct {
	Fixture fixture `json:"fixture"`
	League  league  `json:"league"`
	Teams   teams   `json:"teams"`
	Goals   goals   `json:"goals"`
}

type fixture struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status status `json:"status"`
	Venue  venue  `json:"venue"`
}

type status struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type venue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type league struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Round   string `json:"round"`
}

type teams struct {
	Home team `json:"home"`
	Away team `json:"away"`
}

type team struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
