package odds

import (
	"sort"
	"strings"
	"time"

	"team-schedule-service/internal/timeutil"
)

// Strategy identifies which lookup path resolved a match; surfaced in
// metrics so recall regressions are visible without log spelunking.
type Strategy string

const (
	StrategyExactUTC         Strategy = "exact_utc"
	StrategyExactLocal       Strategy = "exact_local"
	StrategyFuzzyContains    Strategy = "fuzzy_contains"
	StrategyFuzzyFirstWord   Strategy = "fuzzy_first_word"
	StrategyFuzzySignificant Strategy = "fuzzy_first_significant"
	StrategyFuzzyOverlap     Strategy = "fuzzy_word_overlap"
	StrategyFallbackUTC      Strategy = "fallback_utc"
	StrategyFallbackLocal    Strategy = "fallback_local"
)

// Match is a resolved odds record plus the strategy that found it.
type Match struct {
	Record   Record
	Strategy Strategy
}

// Match resolves the record for an event given its opponent's full name
// and start instant. It is a pure function of the index: deterministic,
// always terminates, and reports "no match" as a first-class second
// return rather than a partial record.
//
// The strategies run most-precise first: exact opponent+date keys, then
// a same-date fuzzy scan over name-overlap heuristics, then the
// team+sport+date fallback keys.
func (idx *Index) Match(opponentName string, start time.Time) (Match, bool) {
	if idx == nil {
		return Match{}, false
	}

	utcDate := timeutil.UTCDate(start)
	localDate := timeutil.DisplayDate(start, idx.localZone)
	normOpponent := strings.ToLower(opponentName)

	if rec, ok := idx.exact[exactKey{Opponent: normOpponent, Date: utcDate}]; ok {
		return Match{Record: rec, Strategy: StrategyExactUTC}, true
	}
	if rec, ok := idx.exact[exactKey{Opponent: normOpponent, Date: localDate}]; ok {
		return Match{Record: rec, Strategy: StrategyExactLocal}, true
	}

	if m, ok := idx.fuzzyMatch(normOpponent, utcDate, localDate); ok {
		return m, true
	}

	if rec, ok := idx.fallback[fallbackKey{Team: idx.teamKey, Sport: idx.sportKey, Date: utcDate}]; ok {
		return Match{Record: rec, Strategy: StrategyFallbackUTC}, true
	}
	if rec, ok := idx.fallback[fallbackKey{Team: idx.teamKey, Sport: idx.sportKey, Date: localDate}]; ok {
		return Match{Record: rec, Strategy: StrategyFallbackLocal}, true
	}

	return Match{}, false
}

// fuzzyMatch scans same-date entries (fallback keys excluded) with the
// name-overlap rules, most to least precise. Providers disagree on
// naming granularity ("Penn State" vs "Penn State Nittany Lions"), so a
// strict key join alone has poor recall. Candidates are visited in
// sorted opponent order to keep the scan deterministic.
func (idx *Index) fuzzyMatch(normOpponent, utcDate, localDate string) (Match, bool) {
	type candidate struct {
		opponent string
		rec      Record
	}

	var candidates []candidate
	seen := make(map[string]struct{})
	for key, rec := range idx.exact {
		if key.Date != utcDate && key.Date != localDate {
			continue
		}
		if _, dup := seen[key.Opponent]; dup {
			continue
		}
		seen[key.Opponent] = struct{}{}
		candidates = append(candidates, candidate{opponent: key.Opponent, rec: rec})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].opponent < candidates[j].opponent
	})

	opponentWords := significantWords(normOpponent)
	firstWord := firstSpaceWord(normOpponent)

	for _, cand := range candidates {
		if strings.Contains(normOpponent, cand.opponent) {
			return Match{Record: cand.rec, Strategy: StrategyFuzzyContains}, true
		}
		if firstWord != "" && strings.Contains(cand.opponent, firstWord) {
			return Match{Record: cand.rec, Strategy: StrategyFuzzyFirstWord}, true
		}

		candWords := significantWords(cand.opponent)
		if len(opponentWords) > 0 && len(candWords) > 0 && opponentWords[0] == candWords[0] {
			return Match{Record: cand.rec, Strategy: StrategyFuzzySignificant}, true
		}
		if wordsOverlap(opponentWords, candWords) {
			return Match{Record: cand.rec, Strategy: StrategyFuzzyOverlap}, true
		}
	}

	return Match{}, false
}

// significantWords returns the words of a name longer than two
// characters, which drops fillers like "of" and state abbreviations.
func significantWords(name string) []string {
	fields := strings.Fields(name)
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func firstSpaceWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func wordsOverlap(a, b []string) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa == wb {
				return true
			}
		}
	}
	return false
}
