package fixture

import (
	"context"
	"testing"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/testutil"
)

func fixedNow() time.Time {
	return testutil.MustParseRFC3339("2025-11-29T12:30:00Z")
}

func TestScheduleProviderAnchorsToClock(t *testing.T) {
	p := NewScheduleProvider(fixedNow)

	evs, err := p.FetchSchedule(context.Background(), config.Sport{Key: "football"})
	if err != nil {
		t.Fatalf("FetchSchedule: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 football fixtures, got %d", len(evs))
	}

	// Slate is one completed game a week back, one today, one a week out.
	if !evs[0].Completed || evs[0].Score == nil {
		t.Fatalf("expected first fixture completed with score: %+v", evs[0])
	}
	wantPast := time.Date(2025, time.November, 22, 17, 0, 0, 0, time.UTC)
	if !evs[0].StartTime.Equal(wantPast) {
		t.Fatalf("unexpected past start %s", evs[0].StartTime)
	}

	wantToday := time.Date(2025, time.November, 29, 19, 0, 0, 0, time.UTC)
	if !evs[1].StartTime.Equal(wantToday) {
		t.Fatalf("unexpected today start %s", evs[1].StartTime)
	}
	if evs[1].Opponent.Name != "Penn State Nittany Lions" {
		t.Fatalf("unexpected opponent %q", evs[1].Opponent.Name)
	}
}

func TestScheduleProviderUnknownSport(t *testing.T) {
	p := NewScheduleProvider(fixedNow)
	evs, err := p.FetchSchedule(context.Background(), config.Sport{Key: "curling"})
	if err != nil {
		t.Fatalf("FetchSchedule: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected empty slate, got %d", len(evs))
	}
}

func TestScheduleProviderDeterministic(t *testing.T) {
	p := NewScheduleProvider(fixedNow)

	first, _ := p.FetchSchedule(context.Background(), config.Sport{Key: "basketball"})
	second, _ := p.FetchSchedule(context.Background(), config.Sport{Key: "basketball"})
	if len(first) != len(second) {
		t.Fatalf("slate length changed between calls")
	}
	for i := range first {
		if first[i].ID != second[i].ID || !first[i].StartTime.Equal(second[i].StartTime) {
			t.Fatalf("slate changed between calls: %+v vs %+v", first[i], second[i])
		}
	}
}

func TestOddsProviderCoversSubsetOfSlate(t *testing.T) {
	p := NewOddsProvider(fixedNow)

	football, err := p.FetchOdds(context.Background(), "americanfootball_ncaaf")
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if len(football) != 1 || football[0].AwayTeam != "Penn State Nittany Lions" {
		t.Fatalf("unexpected football lines %+v", football)
	}
	if football[0].Bookmakers[0].Title != "DraftKings" {
		t.Fatalf("unexpected book %q", football[0].Bookmakers[0].Title)
	}
	// Lines up with the fixture slate's game today at 19:00 UTC.
	want := time.Date(2025, time.November, 29, 19, 0, 0, 0, time.UTC)
	if !football[0].CommenceTime.Equal(want) {
		t.Fatalf("unexpected commence time %s", football[0].CommenceTime)
	}

	hockey, err := p.FetchOdds(context.Background(), "icehockey_ncaah")
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if hockey != nil {
		t.Fatalf("expected no hockey lines, got %+v", hockey)
	}
}
