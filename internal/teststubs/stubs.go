package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
	"team-schedule-service/internal/store"
)

// StubScheduleProvider is a test double for providers.ScheduleProvider.
// BySport maps sport keys to results; Err applies to ErrSports entries
// (or all sports when ErrSports is empty and Err is set).
type StubScheduleProvider struct {
	BySport   map[string][]events.Event
	Err       error
	ErrSports map[string]bool
	Calls     atomic.Int32
}

// FetchSchedule returns the configured events for one sport.
func (s *StubScheduleProvider) FetchSchedule(ctx context.Context, sport config.Sport) ([]events.Event, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Err != nil {
		if len(s.ErrSports) == 0 || s.ErrSports[sport.Key] {
			return nil, s.Err
		}
	}
	return s.BySport[sport.Key], nil
}

// StubOddsProvider is a test double for providers.OddsProvider.
type StubOddsProvider struct {
	ByKey  map[string][]odds.RawGame
	Err    error
	ErrKey string

	mu    sync.Mutex
	order []string
}

// FetchOdds returns the configured games for one odds league, failing
// on ErrKey when Err is set.
func (s *StubOddsProvider) FetchOdds(ctx context.Context, oddsKey string) ([]odds.RawGame, error) {
	_ = ctx
	s.mu.Lock()
	s.order = append(s.order, oddsKey)
	s.mu.Unlock()
	if s.Err != nil && (s.ErrKey == "" || s.ErrKey == oddsKey) {
		return nil, s.Err
	}
	return s.ByKey[oddsKey], nil
}

// CallOrder returns the odds league keys in fetch order.
func (s *StubOddsProvider) CallOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// StubSnapshotWriter is a test double for refresher.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]store.Snapshot // keyed by date
	Err     error
}

// WriteEventsSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteEventsSnapshot(date string, snapshot store.Snapshot) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string]store.Snapshot)
	}
	w.Written[date] = snapshot
	return nil
}

// StubCacheWriter is a test double for refresher.CacheWriter.
type StubCacheWriter struct {
	mu      sync.Mutex
	Written map[string][]events.Event
	Err     error
}

// WriteEvents records the cached events for verification in tests.
func (w *StubCacheWriter) WriteEvents(ctx context.Context, date string, evs []events.Event) error {
	_ = ctx
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string][]events.Event)
	}
	w.Written[date] = evs
	return nil
}
