package merge

import (
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

// BuildFeed assembles the client-facing feed from first-party records and the
// external snapshots, in that order. externals must already be in provider
// priority order (registry.External yields them that way).
//
// The same real-world fixture covered by several sources appears once: each
// record's Match Key is checked in both team orderings before inclusion, so
// two providers disagreeing on which side is "home" still collapse. Output is
// deterministic for identical inputs - first-party always wins, then earlier
// externals win.
func BuildFeed(firstParty []models.Match, externals [][]models.Match) []models.Match {
	seen := make(map[string]bool)
	out := make([]models.Match, 0, len(firstParty))

	for i := range firstParty {
		m := firstParty[i]
		markSeen(seen, &m)
		out = append(out, m)
	}

	for _, snapshot := range externals {
		for i := range snapshot {
			m := snapshot[i]
			forward := models.MatchKey(m.Sport, m.HomeTeam, m.AwayTeam)
			reverse := models.ReverseKey(m.Sport, m.HomeTeam, m.AwayTeam)
			if seen[forward] || seen[reverse] {
				continue
			}
			seen[forward] = true
			seen[reverse] = true
			out = append(out, m)
		}
	}
	return out
}

// Filter returns the records whose status is in the given set.
func Filter(matches []models.Match, statuses ...models.Status) []models.Match {
	want := make(map[models.Status]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if want[m.Status] {
			out = append(out, m)
		}
	}
	return out
}

func markSeen(seen map[string]bool, m *models.Match) {
	seen[models.MatchKey(m.Sport, m.HomeTeam, m.AwayTeam)] = true
	seen[models.ReverseKey(m.Sport, m.HomeTeam, m.AwayTeam)] = true
}
