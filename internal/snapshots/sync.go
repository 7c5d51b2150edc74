package snapshots

import (
	"log/slog"
	"time"

	"team-schedule-service/internal/logging"
	"team-schedule-service/internal/timeutil"
)

const defaultRestoreLookbackDays = 2

// Restore loads the most recent events snapshot within lookbackDays of
// now, scanning today first and walking backwards. A restarted process
// uses this to serve events before its first refresh completes. The
// second return is false when no usable snapshot exists.
func Restore(store Store, lookbackDays int, now time.Time, logger *slog.Logger) (EventsSnapshot, bool) {
	if store == nil {
		return EventsSnapshot{}, false
	}
	if lookbackDays <= 0 {
		lookbackDays = defaultRestoreLookbackDays
	}

	for i := 0; i < lookbackDays; i++ {
		date := timeutil.FormatDate(now.UTC().AddDate(0, 0, -i))
		snap, err := store.LoadEvents(date)
		if err != nil {
			continue
		}
		if len(snap.Events) == 0 {
			continue
		}
		logging.Info(logger, "snapshot restored",
			logging.FieldDate, date,
			logging.FieldCount, len(snap.Events),
		)
		return snap, true
	}

	logging.Info(logger, "no snapshot to restore")
	return EventsSnapshot{}, false
}
