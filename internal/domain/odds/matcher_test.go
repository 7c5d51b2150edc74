package odds

import (
	"testing"
	"time"
)

func TestMatchExactUTCKey(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Ohio State Buckeyes", "Michigan Wolverines", commence, "DraftKings", 3.5, 48.5),
	})

	match, ok := idx.Match("Ohio State Buckeyes", commence)
	if !ok {
		t.Fatalf("expected exact match")
	}
	if match.Strategy != StrategyExactUTC {
		t.Fatalf("expected %s, got %s", StrategyExactUTC, match.Strategy)
	}
	if match.Record.Opponent != "Ohio State Buckeyes" {
		t.Fatalf("unexpected opponent %s", match.Record.Opponent)
	}
}

func TestMatchExactLocalKeyWhenUTCDatesDiffer(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cfg := testBuildConfig()
	cfg.LocalZone = denver

	// Odds feed lists 02:00 UTC on the 30th; the schedule carries
	// 01:00 UTC on the 30th. Same UTC date here, so shift the odds
	// entry into the next UTC day to force the local-date path:
	// 23:30 Denver on the 29th is 06:30 UTC on the 30th.
	oddsTime := time.Date(2025, 11, 30, 6, 30, 0, 0, time.UTC)
	idx := BuildIndex(cfg, []RawGame{
		spreadTotalGame("Ohio State Buckeyes", "Michigan Wolverines", oddsTime, "DraftKings", 3.5, 48.5),
	})

	// Event start renders to a different UTC date but the same Denver
	// calendar date.
	eventTime := time.Date(2025, 11, 29, 20, 0, 0, 0, time.UTC)

	match, ok := idx.Match("Ohio State Buckeyes", eventTime)
	if !ok {
		t.Fatalf("expected local-date match")
	}
	if match.Strategy != StrategyExactLocal {
		t.Fatalf("expected %s, got %s", StrategyExactLocal, match.Strategy)
	}
}

func TestMatchFuzzyContains(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	// Odds feed abbreviates the opponent name.
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Penn State", "Michigan Wolverines", commence, "FanDuel", 2.5, 44.5),
	})

	match, ok := idx.Match("Penn State Nittany Lions", commence)
	if !ok {
		t.Fatalf("expected fuzzy match")
	}
	if match.Strategy != StrategyFuzzyContains {
		t.Fatalf("expected %s, got %s", StrategyFuzzyContains, match.Strategy)
	}
	if match.Record.Opponent != "Penn State" {
		t.Fatalf("unexpected opponent %s", match.Record.Opponent)
	}
}

func TestMatchFuzzyFirstWord(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	// Odds feed uses a longer name that still contains the schedule's
	// first word.
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Wisconsin Badgers Football", "Michigan Wolverines", commence, "FanDuel", 6.5, 41.5),
	})

	match, ok := idx.Match("Wisconsin", commence)
	if !ok {
		t.Fatalf("expected fuzzy match")
	}
	if match.Strategy != StrategyFuzzyContains && match.Strategy != StrategyFuzzyFirstWord {
		t.Fatalf("expected a fuzzy name strategy, got %s", match.Strategy)
	}
}

func TestMatchFuzzyWordOverlap(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Fighting Illini", "Michigan Wolverines", commence, "FanDuel", 1.5, 39.5),
	})

	match, ok := idx.Match("Illinois Fighting", commence)
	if !ok {
		t.Fatalf("expected overlap match")
	}
	if match.Strategy != StrategyFuzzyOverlap {
		t.Fatalf("expected %s, got %s", StrategyFuzzyOverlap, match.Strategy)
	}
}

func TestMatchFallbackWhenNamesShareNothing(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Buckeyes", "Michigan Wolverines", commence, "DraftKings", 3.5, 48.5),
	})

	// Schedule spells the opponent with zero common words.
	match, ok := idx.Match("Ohio St.", commence)
	if !ok {
		t.Fatalf("expected fallback match")
	}
	if match.Strategy != StrategyFallbackUTC {
		t.Fatalf("expected %s, got %s", StrategyFallbackUTC, match.Strategy)
	}
	// The record still names the odds feed's opponent.
	if match.Record.Opponent != "Buckeyes" {
		t.Fatalf("unexpected opponent %s", match.Record.Opponent)
	}
}

func TestMatchNoMatchOnDifferentDate(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Ohio State Buckeyes", "Michigan Wolverines", commence, "DraftKings", 3.5, 48.5),
	})

	if _, ok := idx.Match("Ohio State Buckeyes", commence.AddDate(0, 0, 3)); ok {
		t.Fatalf("expected no match for a different date")
	}
}

func TestMatchExactBeatsFuzzy(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	idx := BuildIndex(testBuildConfig(), []RawGame{
		spreadTotalGame("Ohio State Buckeyes", "Michigan Wolverines", commence, "ExactBook", 3.5, 48.5),
		spreadTotalGame("Ohio State", "Michigan Wolverines", commence.Add(time.Hour), "FuzzyBook", 4.5, 50.5),
	})

	match, ok := idx.Match("Ohio State Buckeyes", commence)
	if !ok {
		t.Fatalf("expected match")
	}
	if match.Strategy != StrategyExactUTC {
		t.Fatalf("exact key must short-circuit, got %s", match.Strategy)
	}
	if match.Record.Bookmaker != "ExactBook" {
		t.Fatalf("expected exact record, got %s", match.Record.Bookmaker)
	}
}

func TestMatchNilIndex(t *testing.T) {
	var idx *Index
	if _, ok := idx.Match("anyone", time.Now()); ok {
		t.Fatalf("nil index must never match")
	}
}

func TestMatchDeterministicAcrossRebuilds(t *testing.T) {
	commence := time.Date(2025, 11, 29, 17, 0, 0, 0, time.UTC)
	// Two same-date candidates that could both fuzz against the query;
	// the sorted scan must pick the same one every build.
	games := []RawGame{
		spreadTotalGame("State College", "Michigan Wolverines", commence, "BookA", 2.5, 44.5),
		spreadTotalGame("State University", "Michigan Wolverines", commence.Add(time.Hour), "BookB", 3.5, 45.5),
	}

	var lastBook string
	for i := 0; i < 20; i++ {
		idx := BuildIndex(testBuildConfig(), games)
		match, ok := idx.Match("State", commence)
		if !ok {
			t.Fatalf("expected fuzzy match")
		}
		if i > 0 && match.Record.Bookmaker != lastBook {
			t.Fatalf("match flapped between rebuilds: %s vs %s", lastBook, match.Record.Bookmaker)
		}
		lastBook = match.Record.Bookmaker
	}
}
