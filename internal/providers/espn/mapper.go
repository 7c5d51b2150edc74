package espn

import (
	"strings"
	"time"

	"team-schedule-service/internal/domain/events"
)

func mapSchedule(payload scheduleResponse, sportKey, teamID string) []events.Event {
	mapped := make([]events.Event, 0, len(payload.Events))
	for _, ev := range payload.Events {
		event, ok := mapEvent(ev, sportKey, teamID)
		if !ok {
			continue
		}
		mapped = append(mapped, event)
	}
	return mapped
}

// mapEvent converts one upstream event into the canonical shape. Events
// missing the tracked competitor, the opponent, or a parseable start
// instant are discarded rather than half-filled.
func mapEvent(ev eventResponse, sportKey, teamID string) (events.Event, bool) {
	if len(ev.Competitions) == 0 {
		return events.Event{}, false
	}
	comp := ev.Competitions[0]

	var tracked, opponent *competitorResponse
	for i := range comp.Competitors {
		if comp.Competitors[i].ID == teamID {
			tracked = &comp.Competitors[i]
		} else if opponent == nil {
			opponent = &comp.Competitors[i]
		}
	}
	if tracked == nil || opponent == nil {
		return events.Event{}, false
	}

	start, err := parseStart(ev.Date)
	if err != nil {
		return events.Event{}, false
	}

	statusType := ev.Status.Type
	if statusType.Name == "" {
		statusType = comp.Status.Type
	}

	event := events.Event{
		ID:        ev.ID,
		Sport:     sportKey,
		StartTime: start,
		Name:      ev.Name,
		ShortName: ev.ShortName,
		Opponent: events.Opponent{
			Name:         opponentName(opponent.Team),
			Abbreviation: opponent.Team.Abbreviation,
			Logo:         opponent.Team.Logo,
		},
		IsHome:    tracked.HomeAway == "home",
		Venue:     comp.Venue.FullName,
		Broadcast: firstBroadcast(comp),
		Status:    mapStatus(statusType),
		Completed: statusType.Completed,
	}

	if event.Completed || event.Status == events.StatusInProgress {
		event.Score = &events.Score{
			Own:      scoreOrZero(tracked.Score.DisplayValue),
			Opponent: scoreOrZero(opponent.Score.DisplayValue),
			Won:      tracked.Winner,
		}
	}

	return event, true
}

func parseStart(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	// The site API emits minute precision with a trailing Z offset.
	t, err := time.Parse("2006-01-02T15:04Z07:00", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func opponentName(t teamResponse) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	if t.Name != "" {
		return t.Name
	}
	return "TBD"
}

func firstBroadcast(comp competitionResponse) string {
	if len(comp.Broadcasts) > 0 && comp.Broadcasts[0].Media.ShortName != "" {
		return comp.Broadcasts[0].Media.ShortName
	}
	if len(comp.GeoBroadcasts) > 0 {
		return comp.GeoBroadcasts[0].Media.ShortName
	}
	return ""
}

func mapStatus(st statusTypeResponse) events.Status {
	if st.Completed {
		return events.StatusCompleted
	}
	switch strings.ToLower(st.State) {
	case "in":
		return events.StatusInProgress
	}
	switch strings.ToUpper(st.Name) {
	case "STATUS_IN_PROGRESS", "STATUS_HALFTIME", "STATUS_END_PERIOD":
		return events.StatusInProgress
	case "STATUS_FINAL":
		return events.StatusCompleted
	default:
		return events.StatusScheduled
	}
}

func scoreOrZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
