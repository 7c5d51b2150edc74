package store

import (
	"sync"
	"time"

	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
)

// Snapshot holds one refresh cycle's complete output: the sorted event
// list and the odds index per sport. A snapshot is immutable once
// stored; each refresh builds a whole new one.
type Snapshot struct {
	Events      []events.Event
	Indexes     map[string]*odds.Index
	RefreshedAt time.Time
}

// Index returns the odds index for a sport, or nil when that sport has
// no odds this snapshot.
func (s Snapshot) Index(sport string) *odds.Index {
	return s.Indexes[sport]
}

// MemoryStore keeps the current snapshot in memory behind a RWMutex.
// Readers never see a half-updated state: Replace swaps the whole
// snapshot at once.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace installs a new snapshot, discarding the previous one.
func (s *MemoryStore) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
}

// Current returns the active snapshot. The event slice is shared with
// the store; callers must treat it as read-only.
func (s *MemoryStore) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// Events returns a copy of the current event list.
func (s *MemoryStore) Events() []events.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]events.Event, len(s.snapshot.Events))
	copy(result, s.snapshot.Events)
	return result
}

// EventByID retrieves one event from the current snapshot.
func (s *MemoryStore) EventByID(id string) (events.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ev := range s.snapshot.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return events.Event{}, false
}
