package sportsdb

import (
	"testing"
	"time"
)

func TestClientURLComposition(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"default", ""},
		{"bare host", "https://www.thesportsdb.com"},
		{"trailing slash", "https://www.thesportsdb.com/"},
		{"path prefix in config", "https://www.thesportsdb.com/api/v1/json"},
		{"path prefix with slash", "https://www.thesportsdb.com/api/v1/json/"},
	}

	const want = "https://www.thesportsdb.com/api/v1/json/3/livescore.php?s=Soccer"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.base, "", time.Second)
			if got := c.LivescoreURL("Soccer"); got != want {
				t.Errorf("LivescoreURL() = %q, want %q", got, want)
			}
		})
	}
}

func TestClientTeamSearchURLEscapesQuery(t *testing.T) {
	c := NewClient("", "3", time.Second)
	want := "https://www.thesportsdb.com/api/v1/json/3/searchteams.php?t=Real+Madrid"
	if got := c.TeamSearchURL("Real Madrid"); got != want {
		t.Errorf("TeamSearchURL() = %q, want %q", got, want)
	}
}
