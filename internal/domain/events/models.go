package events

import (
	"sort"
	"time"
)

// Status mirrors the shared contract for event lifecycle states.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Opponent identifies the non-tracked side of an event.
type Opponent struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
}

// Score captures the tracked team's and the opponent's points. Values are
// kept as the provider's display strings; Won reflects the provider's
// winner flag for the tracked team.
type Score struct {
	Own      string `json:"own"`
	Opponent string `json:"opponent"`
	Won      bool   `json:"won"`
}

// Event is the canonical, provider-independent shape of one scheduled
// contest for the tracked team. StartTime is always an absolute instant;
// no field carries an unresolved timezone.
type Event struct {
	ID        string    `json:"id"`
	Sport     string    `json:"sport"`
	StartTime time.Time `json:"startTime"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName,omitempty"`
	Opponent  Opponent  `json:"opponent"`
	IsHome    bool      `json:"isHome"`
	Venue     string    `json:"venue,omitempty"`
	Broadcast string    `json:"broadcast,omitempty"`
	Status    Status    `json:"status"`
	Completed bool      `json:"completed"`
	Score     *Score    `json:"score,omitempty"`
}

// SortByStart orders events ascending by start instant, with ID as a
// stable tiebreaker so the order never depends on fetch completion order.
func SortByStart(evs []Event) {
	sort.Slice(evs, func(i, j int) bool {
		if evs[i].StartTime.Equal(evs[j].StartTime) {
			return evs[i].ID < evs[j].ID
		}
		return evs[i].StartTime.Before(evs[j].StartTime)
	})
}
