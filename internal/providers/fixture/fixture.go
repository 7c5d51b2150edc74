// Package fixture ships deterministic schedule and odds providers used
// for local development and as the default when no upstream credentials
// are configured.
package fixture

import (
	"context"
	"fmt"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
)

// ScheduleProvider returns a fixed slate of events for each sport,
// anchored to the provided clock so windows always contain data.
type ScheduleProvider struct {
	now func() time.Time
}

// NewScheduleProvider constructs a fixture schedule provider. A nil
// clock falls back to time.Now.
func NewScheduleProvider(now func() time.Time) *ScheduleProvider {
	if now == nil {
		now = time.Now
	}
	return &ScheduleProvider{now: now}
}

type slot struct {
	offsetDays int
	hourUTC    int
	opponent   string
	abbrev     string
	isHome     bool
	completed  bool
	won        bool
}

var slots = map[string][]slot{
	"football": {
		{offsetDays: -7, hourUTC: 17, opponent: "Ohio State Buckeyes", abbrev: "OSU", isHome: false, completed: true, won: false},
		{offsetDays: 0, hourUTC: 19, opponent: "Penn State Nittany Lions", abbrev: "PSU", isHome: true},
		{offsetDays: 7, hourUTC: 20, opponent: "Wisconsin Badgers", abbrev: "WIS", isHome: false},
	},
	"basketball": {
		{offsetDays: 1, hourUTC: 23, opponent: "Purdue Boilermakers", abbrev: "PUR", isHome: true},
		{offsetDays: 4, hourUTC: 0, opponent: "Illinois Fighting Illini", abbrev: "ILL", isHome: false},
	},
	"hockey": {
		{offsetDays: 2, hourUTC: 0, opponent: "Minnesota Golden Gophers", abbrev: "MINN", isHome: true},
	},
}

// FetchSchedule returns the fixture slate for one sport.
func (p *ScheduleProvider) FetchSchedule(_ context.Context, sport config.Sport) ([]events.Event, error) {
	base := p.now().UTC().Truncate(24 * time.Hour)

	fixtures := slots[sport.Key]
	evs := make([]events.Event, 0, len(fixtures))
	for i, s := range fixtures {
		start := base.AddDate(0, 0, s.offsetDays).Add(time.Duration(s.hourUTC) * time.Hour)
		ev := events.Event{
			ID:        fmt.Sprintf("fixture-%s-%d", sport.Key, i+1),
			Sport:     sport.Key,
			StartTime: start,
			Name:      fmt.Sprintf("%s vs Michigan Wolverines", s.opponent),
			ShortName: fmt.Sprintf("%s VS MICH", s.abbrev),
			Opponent: events.Opponent{
				Name:         s.opponent,
				Abbreviation: s.abbrev,
			},
			IsHome:    s.isHome,
			Venue:     "Fixture Stadium",
			Broadcast: "FIX1",
			Status:    events.StatusScheduled,
			Completed: s.completed,
		}
		if s.completed {
			ev.Status = events.StatusCompleted
			ev.Score = &events.Score{Own: "21", Opponent: "28", Won: s.won}
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// OddsProvider returns fixed lines covering a subset of the fixture
// schedule, so some events resolve odds and some do not.
type OddsProvider struct {
	now func() time.Time
}

// NewOddsProvider constructs a fixture odds provider.
func NewOddsProvider(now func() time.Time) *OddsProvider {
	if now == nil {
		now = time.Now
	}
	return &OddsProvider{now: now}
}

// FetchOdds returns fixture lines for the league's upcoming games.
func (p *OddsProvider) FetchOdds(_ context.Context, oddsKey string) ([]odds.RawGame, error) {
	base := p.now().UTC().Truncate(24 * time.Hour)

	spread := -3.5
	spreadBack := 3.5
	total := 48.5
	price := -110

	switch oddsKey {
	case "americanfootball_ncaaf":
		return []odds.RawGame{
			{
				HomeTeam:     "Michigan Wolverines",
				AwayTeam:     "Penn State Nittany Lions",
				CommenceTime: base.Add(19 * time.Hour),
				Bookmakers: []odds.RawBookmaker{
					{
						Title: "DraftKings",
						Markets: []odds.RawMarket{
							{
								Key: "spreads",
								Outcomes: []odds.RawOutcome{
									{Name: "Michigan Wolverines", Price: price, Point: &spread},
									{Name: "Penn State Nittany Lions", Price: price, Point: &spreadBack},
								},
							},
							{
								Key: "totals",
								Outcomes: []odds.RawOutcome{
									{Name: "Over", Price: price, Point: &total},
									{Name: "Under", Price: price, Point: &total},
								},
							},
						},
					},
				},
			},
		}, nil
	case "basketball_ncaab":
		hoopsTotal := 145.5
		hoopsSpread := -2.5
		hoopsSpreadBack := 2.5
		return []odds.RawGame{
			{
				HomeTeam:     "Michigan Wolverines",
				AwayTeam:     "Purdue Boilermakers",
				CommenceTime: base.AddDate(0, 0, 1).Add(23 * time.Hour),
				Bookmakers: []odds.RawBookmaker{
					{
						Title: "FanDuel",
						Markets: []odds.RawMarket{
							{
								Key: "spreads",
								Outcomes: []odds.RawOutcome{
									{Name: "Michigan Wolverines", Price: price, Point: &hoopsSpread},
									{Name: "Purdue Boilermakers", Price: price, Point: &hoopsSpreadBack},
								},
							},
							{
								Key: "totals",
								Outcomes: []odds.RawOutcome{
									{Name: "Over", Price: price, Point: &hoopsTotal},
									{Name: "Under", Price: price, Point: &hoopsTotal},
								},
							},
						},
					},
				},
			},
		}, nil
	default:
		return nil, nil
	}
}
