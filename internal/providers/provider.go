package providers

import (
	"context"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
)

// ScheduleProvider defines how upstream schedule data for one
// sport-league is fetched and normalized into canonical events.
// Implementations own transport, authentication and wire parsing; the
// returned events carry absolute start instants only.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, sport config.Sport) ([]events.Event, error)
}

// OddsProvider fetches the raw odds games for one odds-provider league
// key. The result is already parsed off the wire but not yet filtered
// to the tracked team; indexing owns that.
type OddsProvider interface {
	FetchOdds(ctx context.Context, oddsKey string) ([]odds.RawGame, error)
}
