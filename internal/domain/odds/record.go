package odds

import "time"

// RawGame is one game from the odds provider, already parsed off the
// wire. The index consumes only this neutral shape; HTTP transport and
// vendor field names stay in the provider package.
type RawGame struct {
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Bookmakers   []RawBookmaker
}

// RawBookmaker is one book's markets for a game.
type RawBookmaker struct {
	Title   string
	Markets []RawMarket
}

// RawMarket is one market ("spreads" or "totals") with its outcomes.
type RawMarket struct {
	Key      string
	Outcomes []RawOutcome
}

// RawOutcome is one priced outcome within a market.
type RawOutcome struct {
	Name  string
	Price int
	Point *float64
}

// Record is the betting line extracted for one of the tracked team's
// games. Any pointer field may be nil when the book did not offer that
// market; a Record with nil fields is still a match, which consumers
// must render differently from "no odds found at all".
type Record struct {
	Spread     *float64 `json:"spread"`
	SpreadOdds *int     `json:"spreadOdds"`
	Total      *float64 `json:"total"`
	Bookmaker  string   `json:"bookmaker"`
	Opponent   string   `json:"opponent"`
	SportKey   string   `json:"sportKey"`
}

const (
	marketSpreads = "spreads"
	marketTotals  = "totals"
	outcomeOver   = "Over"
)
