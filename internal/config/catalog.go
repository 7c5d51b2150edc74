package config

// Sport describes one sport-league the catalog tracks: where its
// schedule comes from, which odds league it maps to (empty disables
// odds for that sport), and sportsbook deep links surfaced to clients.
type Sport struct {
	Key            string
	Label          string
	SchedulePath   string
	OddsKey        string
	DraftKingsPath string
	FanDuelPath    string
}

// Catalog is the capability bundle that parameterizes the engine: which
// entity is tracked, how to recognize it in free-text provider names,
// which sports to fetch, and whether odds matching applies at all.
// Expressing this as a value keeps one engine serving what would
// otherwise be near-duplicate per-mode forks.
type Catalog struct {
	// TeamID is the schedule provider's competitor identifier.
	TeamID string
	// TeamName is the display name used in labels and calendar export.
	TeamName string
	// TeamKey is the lower-cased token used in odds fallback keys.
	TeamKey string
	// MatchSubstrings/MatchExcludes configure tracked-team recognition
	// in odds-provider names. Excludes are explicit collision rules
	// (e.g. "michigan state"), never inferred.
	MatchSubstrings []string
	MatchExcludes   []string
	Sports          []Sport
	// OddsEnabled gates odds fetching/matching for the whole catalog;
	// individual sports opt out via an empty OddsKey.
	OddsEnabled bool
}

// SportByKey finds a sport in the catalog.
func (c Catalog) SportByKey(key string) (Sport, bool) {
	for _, s := range c.Sports {
		if s.Key == key {
			return s, true
		}
	}
	return Sport{}, false
}

// defaultCatalog tracks the Michigan Wolverines across the three
// college sports the upstream page covered. College hockey odds are
// rarely offered, so that sport ships without an odds league.
func defaultCatalog() Catalog {
	return Catalog{
		TeamID:          "130",
		TeamName:        "Michigan",
		TeamKey:         "michigan",
		MatchSubstrings: []string{"michigan", "wolverines"},
		MatchExcludes:   []string{"michigan state"},
		OddsEnabled:     true,
		Sports: []Sport{
			{
				Key:            "football",
				Label:          "Football",
				SchedulePath:   "football/college-football",
				OddsKey:        "americanfootball_ncaaf",
				DraftKingsPath: "football/ncaaf",
				FanDuelPath:    "college-football",
			},
			{
				Key:            "basketball",
				Label:          "Basketball",
				SchedulePath:   "basketball/mens-college-basketball",
				OddsKey:        "basketball_ncaab",
				DraftKingsPath: "basketball/ncaab",
				FanDuelPath:    "college-basketball",
			},
			{
				Key:            "hockey",
				Label:          "Hockey",
				SchedulePath:   "hockey/mens-college-hockey",
				OddsKey:        "",
				DraftKingsPath: "hockey/ncaah",
				FanDuelPath:    "college-hockey",
			},
		},
	}
}

func loadCatalog() Catalog {
	cat := defaultCatalog()
	cat.TeamID = envOrDefault(envTeamID, cat.TeamID)
	cat.TeamName = envOrDefault(envTeamName, cat.TeamName)
	cat.TeamKey = envOrDefault(envTeamKey, cat.TeamKey)
	cat.MatchSubstrings = listEnvOrDefault(envTeamMatchSubstrings, cat.MatchSubstrings)
	cat.MatchExcludes = listEnvOrDefault(envTeamMatchExcludes, cat.MatchExcludes)
	return cat
}
