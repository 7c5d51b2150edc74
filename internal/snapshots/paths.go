package snapshots

import (
	"fmt"
	"path/filepath"
)

// EventSnapshotPath builds the path to an events snapshot for a given date.
func EventSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, "events", fmt.Sprintf("%s.json", date))
}
