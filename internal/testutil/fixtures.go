package testutil

import (
	"fmt"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
)

// SampleEvent returns a minimal scheduled event fixture with the
// provided id and start instant.
func SampleEvent(id string, start time.Time) events.Event {
	return events.Event{
		ID:        id,
		Sport:     "football",
		StartTime: start,
		Name:      fmt.Sprintf("Opponent %s vs Michigan", id),
		Opponent:  events.Opponent{Name: "Opponent " + id, Abbreviation: "OPP"},
		IsHome:    true,
		Venue:     "Test Stadium",
		Status:    events.StatusScheduled,
	}
}

// SampleRawGame builds one odds game with a single bookmaker carrying a
// spread and a total.
func SampleRawGame(home, away string, commence time.Time, spread, total float64) odds.RawGame {
	spreadBack := -spread
	return odds.RawGame{
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: commence,
		Bookmakers: []odds.RawBookmaker{
			{
				Title: "TestBook",
				Markets: []odds.RawMarket{
					{
						Key: "spreads",
						Outcomes: []odds.RawOutcome{
							{Name: home, Price: -110, Point: &spread},
							{Name: away, Price: -110, Point: &spreadBack},
						},
					},
					{
						Key: "totals",
						Outcomes: []odds.RawOutcome{
							{Name: "Over", Price: -105, Point: &total},
							{Name: "Under", Price: -115, Point: &total},
						},
					},
				},
			},
		},
	}
}

// MichiganCatalog returns the default tracked-team catalog used across
// tests.
func MichiganCatalog() config.Catalog {
	return config.Catalog{
		TeamID:          "130",
		TeamName:        "Michigan",
		TeamKey:         "michigan",
		MatchSubstrings: []string{"michigan", "wolverines"},
		MatchExcludes:   []string{"michigan state"},
		OddsEnabled:     true,
		Sports: []config.Sport{
			{Key: "football", Label: "Football", SchedulePath: "football/college-football", OddsKey: "americanfootball_ncaaf", DraftKingsPath: "football/ncaaf", FanDuelPath: "college-football"},
			{Key: "basketball", Label: "Basketball", SchedulePath: "basketball/mens-college-basketball", OddsKey: "basketball_ncaab", DraftKingsPath: "basketball/ncaab", FanDuelPath: "college-basketball"},
			{Key: "hockey", Label: "Hockey", SchedulePath: "hockey/mens-college-hockey", DraftKingsPath: "hockey/ncaah", FanDuelPath: "college-hockey"},
		},
	}
}

// MichiganMatcher returns the default tracked-team matcher.
func MichiganMatcher() odds.TeamMatcher {
	return odds.TeamMatcher{
		Substrings: []string{"michigan", "wolverines"},
		Excludes:   []string{"michigan state"},
	}
}
