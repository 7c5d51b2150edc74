package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"team-schedule-service/internal/domain/events"
)

// EventsSnapshot is the on-disk payload for one day's event list.
type EventsSnapshot struct {
	Date        string         `json:"date"`
	RefreshedAt time.Time      `json:"refreshedAt"`
	Events      []events.Event `json:"events"`
}

// Store defines how snapshots are loaded.
type Store interface {
	LoadEvents(date string) (EventsSnapshot, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadEvents reads a snapshot for the given date (YYYY-MM-DD) from disk.
// Files are expected at {basePath}/events/{date}.json.
func (s *FSStore) LoadEvents(date string) (EventsSnapshot, error) {
	var payload EventsSnapshot
	if err := s.load(kindEvents, date, &payload); err != nil {
		return EventsSnapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

func (s *FSStore) load(kind snapshotKind, date string, payload any) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if date == "" {
		return errors.New("snapshot date required")
	}
	path := filepath.Join(s.basePath, string(kind), fmt.Sprintf("%s.json", date))
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(payload)
}
