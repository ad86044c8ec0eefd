package merge

import (
	"reflect"
	"testing"

	"github.com/dmarkin/scorestream/internal/pkg/models"
)

func match(source models.Source, id, sport, home, away string) models.Match {
	return models.Match{
		ID:       id,
		Source:   source,
		Sport:    sport,
		Status:   models.StatusLive,
		HomeTeam: home,
		AwayTeam: away,
	}
}

func TestBuildFeed_FirstPartyWinsOverExternal(t *testing.T) {
	fp := []models.Match{match(models.SourceFirstParty, "fp1", "football", "River", "Boca")}
	ext := [][]models.Match{
		{match(models.SourceSportsDB, "e1", "football", "River", "Boca")},
	}

	feed := BuildFeed(fp, ext)
	if len(feed) != 1 {
		t.Fatalf("got %d entries, want 1", len(feed))
	}
	if feed[0].Source != models.SourceFirstParty {
		t.Errorf("retained source = %q, want firstparty", feed[0].Source)
	}
}

func TestBuildFeed_ReversedOrderingMerges(t *testing.T) {
	// Dedup symmetry: providers disagree on which side is home.
	fp := []models.Match{match(models.SourceFirstParty, "fp1", "football", "River", "Boca")}
	ext := [][]models.Match{
		{match(models.SourceSportsDB, "e1", "football", "Boca", "River")},
	}

	feed := BuildFeed(fp, ext)
	if len(feed) != 1 {
		t.Fatalf("got %d entries, want 1 (reversed ordering must merge)", len(feed))
	}
	if feed[0].ID != "fp1" {
		t.Errorf("first-party record must be the one retained, got %q", feed[0].ID)
	}
}

func TestBuildFeed_ExternalPriorityOrder(t *testing.T) {
	ext := [][]models.Match{
		{match(models.SourceCricAPI, "c1", "cricket", "India", "Australia")},
		{match(models.SourceSportsDB, "s1", "cricket", "Australia", "India")},
	}

	feed := BuildFeed(nil, ext)
	if len(feed) != 1 {
		t.Fatalf("got %d entries, want 1", len(feed))
	}
	if feed[0].Source != models.SourceCricAPI {
		t.Errorf("earlier external must win, got %q", feed[0].Source)
	}
}

func TestBuildFeed_DistinctFixturesAllIncluded(t *testing.T) {
	fp := []models.Match{match(models.SourceFirstParty, "fp1", "football", "River", "Boca")}
	ext := [][]models.Match{
		{match(models.SourceSportsDB, "e1", "football", "Arsenal", "Chelsea")},
		{match(models.SourceAPIFootball, "a1", "basketball", "River", "Boca")}, // other sport, not a dup
	}

	feed := BuildFeed(fp, ext)
	if len(feed) != 3 {
		t.Errorf("got %d entries, want 3", len(feed))
	}
}

func TestBuildFeed_Deterministic(t *testing.T) {
	fp := []models.Match{match(models.SourceFirstParty, "fp1", "football", "River", "Boca")}
	ext := [][]models.Match{
		{match(models.SourceSportsDB, "e1", "football", "Boca", "River"), match(models.SourceSportsDB, "e2", "football", "A", "B")},
		{match(models.SourceAPIFootball, "a1", "football", "B", "A")},
	}

	first := BuildFeed(fp, ext)
	second := BuildFeed(fp, ext)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical output")
	}
}

func TestFilter(t *testing.T) {
	matches := []models.Match{
		{ID: "1", Status: models.StatusLive},
		{ID: "2", Status: models.StatusUpcoming},
		{ID: "3", Status: models.StatusCompleted},
	}

	live := Filter(matches, models.StatusLive)
	if len(live) != 1 || live[0].ID != "1" {
		t.Errorf("live filter = %+v", live)
	}

	current := Filter(matches, models.StatusLive, models.StatusUpcoming)
	if len(current) != 2 {
		t.Errorf("got %d current matches, want 2", len(current))
	}
}
