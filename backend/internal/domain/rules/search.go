package rules

import "strings"

const ListLimit = 100

// MatchesSearch is a case-insensitive substring match on display name or email.
// An empty term matches everything.
func MatchesSearch(term, displayName, email string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(displayName), term) ||
		strings.Contains(strings.ToLower(email), term)
}
