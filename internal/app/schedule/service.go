// Package schedule assembles the read-side views: windowed event lists
// annotated with odds, grouping labels and sportsbook links.
package schedule

import (
	"log/slog"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
	"team-schedule-service/internal/logging"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/store"
	"team-schedule-service/internal/window"
)

const (
	draftKingsBaseURL = "https://sportsbook.draftkings.com/leagues"
	fanDuelBaseURL    = "https://sportsbook.fanduel.com/navigation"

	// strategyNone is recorded when no lookup path resolves odds.
	strategyNone = "none"
)

// SportsbookLinks carries deep links into the books' league pages.
type SportsbookLinks struct {
	DraftKings string `json:"draftKings,omitempty"`
	FanDuel    string `json:"fanDuel,omitempty"`
}

// AnnotatedEvent is an event enriched for presentation: the matched
// odds record (nil when none resolved), grouping labels in the
// reference timezone, and sportsbook links.
type AnnotatedEvent struct {
	events.Event
	Odds       *odds.Record     `json:"odds,omitempty"`
	DayLabel   string           `json:"dayLabel"`
	MonthLabel string           `json:"monthLabel"`
	Sportsbook *SportsbookLinks `json:"sportsbook,omitempty"`
}

// ViewResponse is the payload for one windowed view request.
type ViewResponse struct {
	View        string           `json:"view"`
	WeekOffset  int              `json:"weekOffset"`
	Sport       string           `json:"sport"`
	Label       string           `json:"label"`
	Events      []AnnotatedEvent `json:"events"`
	RefreshedAt time.Time        `json:"refreshedAt"`
}

// Service serves views over the store's current snapshot.
type Service struct {
	store   *store.MemoryStore
	filter  window.Filter
	catalog config.Catalog
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs the view service.
func NewService(st *store.MemoryStore, filter window.Filter, catalog config.Catalog, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		store:   st,
		filter:  filter,
		catalog: catalog,
		logger:  logger,
		metrics: recorder,
	}
}

// View returns the filtered, annotated event list for a mode, week
// offset and sport filter.
func (s *Service) View(mode window.Mode, weekOffset int, sport string) ViewResponse {
	snap := s.store.Current()
	filtered := s.filter.Apply(snap.Events, mode, weekOffset, sport)

	annotated := make([]AnnotatedEvent, 0, len(filtered))
	for _, ev := range filtered {
		annotated = append(annotated, s.annotate(ev, snap))
	}

	return ViewResponse{
		View:        string(mode),
		WeekOffset:  weekOffset,
		Sport:       normalizeSport(sport),
		Label:       s.filter.Label(mode, weekOffset),
		Events:      annotated,
		RefreshedAt: snap.RefreshedAt,
	}
}

// EventByID returns one annotated event from the current snapshot.
func (s *Service) EventByID(id string) (AnnotatedEvent, bool) {
	snap := s.store.Current()
	for _, ev := range snap.Events {
		if ev.ID == id {
			return s.annotate(ev, snap), true
		}
	}
	return AnnotatedEvent{}, false
}

// annotate attaches odds, labels and sportsbook links to one event.
// Completed events never get odds; lines on finished games are stale by
// definition.
func (s *Service) annotate(ev events.Event, snap store.Snapshot) AnnotatedEvent {
	annotated := AnnotatedEvent{
		Event:      ev,
		DayLabel:   s.filter.DayKey(ev),
		MonthLabel: s.filter.MonthKey(ev),
		Sportsbook: s.sportsbookLinks(ev.Sport),
	}

	if ev.Completed {
		return annotated
	}

	idx := snap.Index(ev.Sport)
	if idx == nil {
		return annotated
	}

	match, ok := idx.Match(ev.Opponent.Name, ev.StartTime)
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordOddsMatch(ev.Sport, strategyNone)
		}
		return annotated
	}

	if s.metrics != nil {
		s.metrics.RecordOddsMatch(ev.Sport, string(match.Strategy))
	}
	if s.logger != nil {
		s.logger.Debug("odds matched",
			slog.String(logging.FieldSport, ev.Sport),
			slog.String(logging.FieldStrategy, string(match.Strategy)),
		)
	}

	rec := match.Record
	annotated.Odds = &rec
	return annotated
}

func (s *Service) sportsbookLinks(sportKey string) *SportsbookLinks {
	sport, ok := s.catalog.SportByKey(sportKey)
	if !ok {
		return nil
	}
	links := &SportsbookLinks{}
	if sport.DraftKingsPath != "" {
		links.DraftKings = draftKingsBaseURL + "/" + sport.DraftKingsPath
	}
	if sport.FanDuelPath != "" {
		links.FanDuel = fanDuelBaseURL + "/" + sport.FanDuelPath
	}
	if links.DraftKings == "" && links.FanDuel == "" {
		return nil
	}
	return links
}

func normalizeSport(sport string) string {
	if sport == "" {
		return window.SportAll
	}
	return sport
}
