package server

import (
	"log/slog"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/snapshots"
	"team-schedule-service/internal/store"
)

func snapshotsWriter(cfg config.Config) *snapshots.Writer {
	return snapshots.NewWriter(cfg.Snapshots.Folder, cfg.Snapshots.RetentionDays)
}

// restoreSnapshot seeds the store from the most recent on-disk snapshot
// so a restarted process serves events before its first refresh. Odds
// indexes are runtime-only and rebuild on the next refresh cycle.
func restoreSnapshot(cfg config.Config, memoryStore *store.MemoryStore, logger *slog.Logger) {
	if !cfg.Snapshots.Enabled {
		return
	}
	fsStore := snapshots.NewFSStore(cfg.Snapshots.Folder)
	snap, ok := snapshots.Restore(fsStore, 0, time.Now(), logger)
	if !ok {
		return
	}
	memoryStore.Replace(store.Snapshot{
		Events:      snap.Events,
		RefreshedAt: snap.RefreshedAt,
	})
}
