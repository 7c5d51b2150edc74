package odds

import (
	"testing"
	"time"
)

func testMatcher() TeamMatcher {
	return TeamMatcher{
		Substrings: []string{"michigan", "wolverines"},
		Excludes:   []string{"michigan state"},
	}
}

func testBuildConfig() BuildConfig {
	return BuildConfig{
		SportKey:  "americanfootball_ncaaf",
		TeamKey:   "michigan",
		Matcher:   testMatcher(),
		LocalZone: time.UTC,
	}
}

func spreadTotalGame(home, away string, commence time.Time, book string, spread, total float64) RawGame {
	spreadBack := -spread
	return RawGame{
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: commence,
		Bookmakers: []RawBookmaker{
			{
				Title: book,
				Markets: []RawMarket{
					{
						Key: "spreads",
						Outcomes: []RawOutcome{
							{Name: home, Price: -110, Point: &spread},
							{Name: away, Price: -110, Point: &spreadBack},
						},
					},
					{
						Key: "totals",
						Outcomes: []RawOutcome{
							{Name: "Over", Price: -105, Point: &total},
							{Name: "Under", Price: -115, Point: &total},
						},
					},
				},
			},
		},
	}
}

func TestBuildIndexStoresTrackedGames(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "DraftKings", -3.5, 48.5),
		spreadTotalGame("Iowa Hawkeyes", "Wisconsin Badgers", commence, "DraftKings", -7, 40),
	}

	idx := BuildIndex(testBuildConfig(), games)

	// One tracked game under UTC and display-date keys.
	if idx.Len() != 2 {
		t.Fatalf("expected 2 opponent-keyed entries, got %d", idx.Len())
	}

	match, ok := idx.Match("Ohio State Buckeyes", commence)
	if !ok {
		t.Fatalf("expected match for tracked game")
	}
	if match.Record.Opponent != "Ohio State Buckeyes" {
		t.Fatalf("unexpected opponent %s", match.Record.Opponent)
	}
	if match.Record.Spread == nil || *match.Record.Spread != -3.5 {
		t.Fatalf("unexpected spread %v", match.Record.Spread)
	}
	if match.Record.Total == nil || *match.Record.Total != 48.5 {
		t.Fatalf("unexpected total %v", match.Record.Total)
	}
	if match.Record.Bookmaker != "DraftKings" {
		t.Fatalf("unexpected bookmaker %s", match.Record.Bookmaker)
	}
}

func TestBuildIndexSkipsGamesWithoutBookmakers(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		{HomeTeam: "Michigan Wolverines", AwayTeam: "Ohio State Buckeyes", CommenceTime: commence},
	}

	idx := BuildIndex(testBuildConfig(), games)

	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d entries", idx.Len())
	}
}

func TestBuildIndexExcludedNameIsNotTracked(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		spreadTotalGame("Michigan State Spartans", "Penn State Nittany Lions", commence, "DraftKings", -2, 44),
	}

	idx := BuildIndex(testBuildConfig(), games)

	if idx.Len() != 0 {
		t.Fatalf("michigan state game must not be indexed, got %d entries", idx.Len())
	}
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "FirstBook", -3.5, 48.5),
		spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "SecondBook", -4.5, 50.5),
	}

	idx := BuildIndex(testBuildConfig(), games)

	match, ok := idx.Match("Ohio State Buckeyes", commence)
	if !ok {
		t.Fatalf("expected match")
	}
	if match.Record.Bookmaker != "SecondBook" {
		t.Fatalf("expected later insert to win, got %s", match.Record.Bookmaker)
	}
}

func TestBuildIndexIdempotent(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "DraftKings", -3.5, 48.5),
	}

	first := BuildIndex(testBuildConfig(), games)
	second := BuildIndex(testBuildConfig(), games)

	if first.Len() != second.Len() {
		t.Fatalf("rebuild changed entry count: %d vs %d", first.Len(), second.Len())
	}
	m1, ok1 := first.Match("Ohio State Buckeyes", commence)
	m2, ok2 := second.Match("Ohio State Buckeyes", commence)
	if !ok1 || !ok2 {
		t.Fatalf("expected both indexes to match")
	}
	if m1.Strategy != m2.Strategy || m1.Record.Bookmaker != m2.Record.Bookmaker {
		t.Fatalf("rebuild changed match result")
	}
	if *m1.Record.Spread != *m2.Record.Spread || *m1.Record.Total != *m2.Record.Total {
		t.Fatalf("rebuild changed market values")
	}
}

func TestExtractRecordMissingMarketsDegradeToNil(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	games := []RawGame{
		{
			HomeTeam:     "Michigan Wolverines",
			AwayTeam:     "Ohio State Buckeyes",
			CommenceTime: commence,
			Bookmakers: []RawBookmaker{
				{Title: "BareBook"},
			},
		},
	}

	idx := BuildIndex(testBuildConfig(), games)

	match, ok := idx.Match("Ohio State Buckeyes", commence)
	if !ok {
		t.Fatalf("bookmaker without markets is still a match")
	}
	if match.Record.Spread != nil || match.Record.SpreadOdds != nil || match.Record.Total != nil {
		t.Fatalf("expected nil market fields, got %+v", match.Record)
	}
	if match.Record.Bookmaker != "BareBook" {
		t.Fatalf("unexpected bookmaker %s", match.Record.Bookmaker)
	}
}

func TestBuildIndexFirstBookmakerOnly(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	game := spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "FirstBook", -3.5, 48.5)
	game.Bookmakers = append(game.Bookmakers, spreadTotalGame("Michigan Wolverines", "Ohio State Buckeyes", commence, "SecondBook", -9, 60).Bookmakers...)

	idx := BuildIndex(testBuildConfig(), []RawGame{game})

	match, _ := idx.Match("Ohio State Buckeyes", commence)
	if match.Record.Bookmaker != "FirstBook" {
		t.Fatalf("expected first bookmaker, got %s", match.Record.Bookmaker)
	}
}
