package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DisplayDateLayout is the loosely formatted calendar-date rendering some
// odds feeds round to (e.g. "Sat Nov 29 2025"). It is deliberately distinct
// from DateLayout so the two key families can never collide.
const DisplayDateLayout = "Mon Jan 2 2006"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UTCDate renders the UTC calendar date of an instant as YYYY-MM-DD.
func UTCDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DisplayDate renders the calendar date of an instant in loc using
// DisplayDateLayout. A nil loc falls back to UTC.
func DisplayDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayDateLayout)
}

// DayStart truncates an instant to midnight of its calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
