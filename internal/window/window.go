// Package window computes the "today / week / season" views over the
// canonical event list, anchored to a fixed reference timezone rather
// than the viewer's local clock.
package window

import (
	"fmt"
	"time"

	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/timeutil"
)

// Mode selects which view window applies.
type Mode string

const (
	ModeToday  Mode = "today"
	ModeWeek   Mode = "week"
	ModeSeason Mode = "season"
)

// SportAll disables sport filtering.
const SportAll = "all"

// ParseMode validates a view mode string, defaulting empty to today.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeToday, ModeWeek, ModeSeason:
		return Mode(raw), nil
	case "":
		return ModeToday, nil
	default:
		return "", fmt.Errorf("unknown view %q", raw)
	}
}

// Filter computes date windows in a fixed reference timezone. The
// reference day is derived from Now on every call, never cached, so a
// window stays correct relative to the true current instant.
type Filter struct {
	Loc *time.Location
	Now func() time.Time

	// KeepUncompleted additionally retains season-view events that are
	// not yet marked completed, regardless of date.
	KeepUncompleted bool
}

// New constructs a Filter with real-time defaults.
func New(loc *time.Location, keepUncompleted bool) Filter {
	if loc == nil {
		loc = time.UTC
	}
	return Filter{
		Loc:             loc,
		Now:             time.Now,
		KeepUncompleted: keepUncompleted,
	}
}

// ReferenceDay returns midnight of the current calendar day in the
// reference timezone.
func (f Filter) ReferenceDay() time.Time {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return timeutil.DayStart(now(), f.loc())
}

// Range computes the half-open [start, end) window for a mode and week
// offset. Season has no fixed window; ok is false.
func (f Filter) Range(mode Mode, weekOffset int) (start, end time.Time, ok bool) {
	ref := f.ReferenceDay()
	switch mode {
	case ModeToday:
		return ref, ref.AddDate(0, 0, 1), true
	case ModeWeek:
		start = ref.AddDate(0, 0, 7*weekOffset)
		return start, start.AddDate(0, 0, 7), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Apply filters events by sport and by the window for the given mode
// and offset. It is a pure function over its inputs and the clock.
func (f Filter) Apply(evs []events.Event, mode Mode, weekOffset int, sport string) []events.Event {
	out := make([]events.Event, 0, len(evs))

	if mode == ModeSeason {
		ref := f.ReferenceDay()
		for _, ev := range evs {
			if !sportMatches(sport, ev.Sport) {
				continue
			}
			day := timeutil.DayStart(ev.StartTime, f.loc())
			if !day.Before(ref) || (f.KeepUncompleted && !ev.Completed) {
				out = append(out, ev)
			}
		}
		return out
	}

	start, end, ok := f.Range(mode, weekOffset)
	if !ok {
		return out
	}
	for _, ev := range evs {
		if !sportMatches(sport, ev.Sport) {
			continue
		}
		day := timeutil.DayStart(ev.StartTime, f.loc())
		if !day.Before(start) && day.Before(end) {
			out = append(out, ev)
		}
	}
	return out
}

// Label renders the human-readable heading for the active window. The
// offset-to-label mapping is a contract other components rely on.
func (f Filter) Label(mode Mode, weekOffset int) string {
	switch mode {
	case ModeToday:
		return f.ReferenceDay().Format("Monday, January 2, 2006")
	case ModeSeason:
		return "Remaining Season"
	}

	start, end, _ := f.Range(ModeWeek, weekOffset)
	// End of the displayed range is the window's last day, not its
	// exclusive bound.
	last := end.AddDate(0, 0, -1)

	var name string
	switch {
	case weekOffset == 0:
		name = "This Week"
	case weekOffset == 1:
		name = "Next Week"
	case weekOffset == -1:
		name = "Last Week"
	case weekOffset > 1:
		name = fmt.Sprintf("%d Weeks Ahead", weekOffset)
	default:
		name = fmt.Sprintf("%d Weeks Ago", -weekOffset)
	}

	return fmt.Sprintf("%s (%s - %s)", name, start.Format("Jan 2"), last.Format("Jan 2"))
}

// DayKey groups an event under its calendar day in the reference zone
// (week view sections).
func (f Filter) DayKey(ev events.Event) string {
	return ev.StartTime.In(f.loc()).Format("Monday, Jan 2")
}

// MonthKey groups an event under its calendar month in the reference
// zone (season view sections).
func (f Filter) MonthKey(ev events.Event) string {
	return ev.StartTime.In(f.loc()).Format("January 2006")
}

func (f Filter) loc() *time.Location {
	if f.Loc == nil {
		return time.UTC
	}
	return f.Loc
}

func sportMatches(filter, sport string) bool {
	return filter == "" || filter == SportAll || filter == sport
}
