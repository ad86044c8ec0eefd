package models

import "strings"

// MatchKey builds the cross-provider fixture identity from sport and team
// names. Two providers reporting the same real-world fixture produce the same
// key as long as they agree on team naming; when they disagree on which side
// is "home", ReverseKey covers the swapped ordering.
//
// IMPORTANT: this assumes team names are in the same language across sources.
// All four provider clients request English payloads.
func MatchKey(sport, home, away string) string {
	return normalizeKeyPart(sport) + "|" + normalizeKeyPart(home) + "|" + normalizeKeyPart(away)
}

// ReverseKey returns the key with home and away swapped.
func ReverseKey(sport, home, away string) string {
	return MatchKey(sport, away, home)
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	// Collapse internal whitespace and strip the key separator so team names
	// cannot forge another record's key.
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// Fingerprint summarizes the fields whose change is worth announcing. It is
// compared between poll cycles to gate event emission and is never persisted
// on the canonical record.
func Fingerprint(m *Match) string {
	return m.HomeScore + "|" + m.AwayScore + "|" + string(m.Status)
}
