package odds

import "strings"

// TeamMatcher decides whether a raw provider name refers to the tracked
// team. Matching is substring-based on the lower-cased name; Excludes
// handles teams whose names contain the tracked team's name (e.g.
// "Michigan State" when tracking "Michigan"). Exclusions are explicit
// configuration, never inferred.
type TeamMatcher struct {
	Substrings []string
	Excludes   []string
}

// Matches reports whether name refers to the tracked team.
func (m TeamMatcher) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ex := range m.Excludes {
		if ex != "" && strings.Contains(lower, strings.ToLower(ex)) {
			return false
		}
	}
	for _, sub := range m.Substrings {
		if sub != "" && strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
