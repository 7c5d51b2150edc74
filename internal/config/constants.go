package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envScheduleSource  = "SCHEDULE_PROVIDER"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envSnapshotOn      = "SNAPSHOTS_ENABLED"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotFolder  = "SNAPSHOT_FOLDER"
	envRedisAddr       = "REDIS_ADDR"
	envRedisPassword   = "REDIS_PASSWORD"
	envRedisDB         = "REDIS_DB"

	envReferenceTZ         = "REFERENCE_TZ"
	envOddsLocalDateTZ     = "ODDS_LOCAL_DATE_TZ"
	envSeasonKeepUncompl   = "SEASON_KEEP_UNCOMPLETED"
	envTeamID              = "TEAM_ID"
	envTeamName            = "TEAM_NAME"
	envTeamKey             = "TEAM_KEY"
	envTeamMatchSubstrings = "TEAM_MATCH_SUBSTRINGS"
	envTeamMatchExcludes   = "TEAM_MATCH_EXCLUDES"

	defaultPort = "4000"
	// Matches the upstream page's auto-refresh cadence; both providers
	// tolerate this comfortably within quota.
	defaultRefreshInterval = 15 * Duration(time.Minute)
	defaultScheduleSource  = "fixture"
	defaultMetricsPort     = "9090"
	defaultSnapshotOn      = true
	defaultSnapshotDays    = 14
	defaultSnapshotFolder  = "data/snapshots"

	// Display timezone the schedule is anchored to, independent of
	// where the service or the viewer runs.
	defaultReferenceTZ = "America/Denver"
	// Zone for the odds feed's loosely formatted "local" date keys.
	// This was implicitly the host zone upstream; explicit here.
	defaultOddsLocalDateTZ = "UTC"
)
