// Package calendar renders events as iCalendar payloads and calendar
// deep links so clients can export the schedule.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
)

// eventDuration is the assumed game length; schedule feeds carry no end
// time.
const eventDuration = 3 * time.Hour

const icsTimeLayout = "20060102T150405Z"

// Builder renders calendar artifacts for a catalog's events.
type Builder struct {
	catalog config.Catalog
}

// NewBuilder constructs a calendar builder.
func NewBuilder(catalog config.Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// Title renders the event's calendar title, e.g.
// "Michigan Football: vs Ohio State Buckeyes".
func (b *Builder) Title(ev events.Event) string {
	versus := "@"
	if ev.IsHome {
		versus = "vs"
	}
	return fmt.Sprintf("%s %s: %s %s", b.catalog.TeamName, b.sportLabel(ev.Sport), versus, ev.Opponent.Name)
}

// Description renders the multi-line event details.
func (b *Builder) Description(ev events.Event) string {
	side := "Away"
	if ev.IsHome {
		side = "Home"
	}
	lines := []string{
		fmt.Sprintf("%s %s", b.catalog.TeamName, b.sportLabel(ev.Sport)),
		side + " game",
	}
	if ev.Broadcast != "" {
		lines = append(lines, "Watch on: "+ev.Broadcast)
	}
	return strings.Join(lines, "\n")
}

// ICS renders a complete VCALENDAR document for the given events.
// Completed events are excluded; there is nothing to attend.
func (b *Builder) ICS(evs []events.Event) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString(fmt.Sprintf("PRODID:-//%s Schedule//EN\r\n", b.catalog.TeamName))

	for _, ev := range evs {
		if ev.Completed {
			continue
		}
		b.writeVEvent(&sb, ev)
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func (b *Builder) writeVEvent(sb *strings.Builder, ev events.Event) {
	start := ev.StartTime.UTC()
	end := start.Add(eventDuration)

	sb.WriteString("BEGIN:VEVENT\r\n")
	sb.WriteString("UID:" + ev.ID + "\r\n")
	sb.WriteString("DTSTART:" + start.Format(icsTimeLayout) + "\r\n")
	sb.WriteString("DTEND:" + end.Format(icsTimeLayout) + "\r\n")
	sb.WriteString("SUMMARY:" + escapeICS(b.Title(ev)) + "\r\n")
	sb.WriteString("DESCRIPTION:" + escapeICS(b.Description(ev)) + "\r\n")
	sb.WriteString("LOCATION:" + escapeICS(ev.Venue) + "\r\n")
	sb.WriteString("END:VEVENT\r\n")
}

// GoogleURL builds a Google Calendar compose link for one event.
func (b *Builder) GoogleURL(ev events.Event) string {
	start := ev.StartTime.UTC()
	end := start.Add(eventDuration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", b.Title(ev))
	q.Set("dates", start.Format(icsTimeLayout)+"/"+end.Format(icsTimeLayout))
	q.Set("details", b.Description(ev))
	q.Set("location", ev.Venue)

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// OutlookURL builds an Outlook deep link for one event.
func (b *Builder) OutlookURL(ev events.Event) string {
	start := ev.StartTime.UTC()
	end := start.Add(eventDuration)

	q := url.Values{}
	q.Set("subject", b.Title(ev))
	q.Set("startdt", start.Format(time.RFC3339))
	q.Set("enddt", end.Format(time.RFC3339))
	q.Set("body", b.Description(ev))
	q.Set("location", ev.Venue)

	return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode()
}

func (b *Builder) sportLabel(sportKey string) string {
	if sport, ok := b.catalog.SportByKey(sportKey); ok {
		return sport.Label
	}
	return sportKey
}

// escapeICS escapes text per RFC 5545: backslash, comma, semicolon and
// newline.
func escapeICS(v string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(v)
}
