package server

import (
	"context"

	"team-schedule-service/internal/refresher"
)

// Refresher defines the minimal refresh-loop behavior needed by the server.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}
