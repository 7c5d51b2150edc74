package odds

import (
	"strings"
	"time"

	"team-schedule-service/internal/timeutil"
)

// exactKey addresses a record by normalized opponent name and a
// calendar-date rendering. Keys are compared as a unit, so an opponent
// name can never bleed into the date portion.
type exactKey struct {
	Opponent string
	Date     string
}

// fallbackKey addresses a record by tracked team, sport and date only,
// for when opponent-name keys fail entirely. The stored Record carries
// the opponent explicitly since the key no longer encodes it.
type fallbackKey struct {
	Team  string
	Sport string
	Date  string
}

// Index is the per-sport-league lookup structure built from one odds
// payload. Each game is stored under four keys: opponent+UTC date,
// opponent+local date, and the two team+sport+date fallbacks. Later
// inserts under an identical key silently replace earlier ones.
//
// An Index is immutable once built; a refresh discards it wholesale and
// builds a new one. It is safe for concurrent readers.
type Index struct {
	sportKey  string
	teamKey   string
	localZone *time.Location
	exact     map[exactKey]Record
	fallback  map[fallbackKey]Record
}

// BuildConfig controls how raw odds games are filtered and keyed.
type BuildConfig struct {
	// SportKey is the odds provider's league identifier
	// (e.g. "americanfootball_ncaaf").
	SportKey string
	// TeamKey is the lower-cased token used in fallback keys
	// (e.g. "michigan").
	TeamKey string
	// Matcher identifies the tracked team among raw names.
	Matcher TeamMatcher
	// LocalZone is the explicit timezone used for the "local" calendar
	// date rendering. The original behavior depended on the execution
	// environment's default zone; here it is configuration.
	LocalZone *time.Location
}

// BuildIndex turns one odds payload into an Index. Games that involve
// neither side of the tracked team, or that carry no bookmaker at all,
// are discarded. Missing markets degrade to nil fields, never errors.
func BuildIndex(cfg BuildConfig, games []RawGame) *Index {
	idx := &Index{
		sportKey:  cfg.SportKey,
		teamKey:   strings.ToLower(cfg.TeamKey),
		localZone: cfg.LocalZone,
		exact:     make(map[exactKey]Record),
		fallback:  make(map[fallbackKey]Record),
	}

	for _, game := range games {
		trackedHome := cfg.Matcher.Matches(game.HomeTeam)
		trackedAway := cfg.Matcher.Matches(game.AwayTeam)
		if !trackedHome && !trackedAway {
			continue
		}
		if len(game.Bookmakers) == 0 {
			continue
		}

		opponent := game.HomeTeam
		if trackedHome {
			opponent = game.AwayTeam
		}

		rec := extractRecord(game.Bookmakers[0], cfg.Matcher, opponent, cfg.SportKey)

		utcDate := timeutil.UTCDate(game.CommenceTime)
		localDate := timeutil.DisplayDate(game.CommenceTime, cfg.LocalZone)
		normOpponent := strings.ToLower(opponent)

		idx.exact[exactKey{Opponent: normOpponent, Date: utcDate}] = rec
		idx.exact[exactKey{Opponent: normOpponent, Date: localDate}] = rec
		idx.fallback[fallbackKey{Team: idx.teamKey, Sport: cfg.SportKey, Date: utcDate}] = rec
		idx.fallback[fallbackKey{Team: idx.teamKey, Sport: cfg.SportKey, Date: localDate}] = rec
	}

	return idx
}

// extractRecord reads the first bookmaker only; there is no aggregation
// across books. The spread outcome is the one naming the tracked team,
// the total is the "Over" outcome.
func extractRecord(book RawBookmaker, matcher TeamMatcher, opponent, sportKey string) Record {
	rec := Record{
		Bookmaker: book.Title,
		Opponent:  opponent,
		SportKey:  sportKey,
	}

	for _, market := range book.Markets {
		switch market.Key {
		case marketSpreads:
			for _, outcome := range market.Outcomes {
				if matcher.Matches(outcome.Name) {
					if outcome.Point != nil {
						point := *outcome.Point
						rec.Spread = &point
					}
					price := outcome.Price
					rec.SpreadOdds = &price
					break
				}
			}
		case marketTotals:
			for _, outcome := range market.Outcomes {
				if outcome.Name == outcomeOver {
					if outcome.Point != nil {
						point := *outcome.Point
						rec.Total = &point
					}
					break
				}
			}
		}
	}

	return rec
}

// SportKey returns the odds-provider league this index was built for.
func (idx *Index) SportKey() string {
	if idx == nil {
		return ""
	}
	return idx.sportKey
}

// Len reports the number of opponent-keyed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.exact)
}
