package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RefreshInterval Duration
	ScheduleSource  string
	Catalog         Catalog
	Window          WindowConfig
	ESPN            ESPNConfig
	OddsAPI         OddsAPIConfig
	Metrics         MetricsConfig
	Snapshots       SnapshotConfig
	Redis           RedisConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		ScheduleSource:  envOrDefault(envScheduleSource, defaultScheduleSource),
		Catalog:         loadCatalog(),
		Window:          loadWindow(),
		ESPN:            loadESPN(),
		OddsAPI:         loadOddsAPI(),
		Metrics:         loadMetrics(),
		Snapshots:       loadSnapshots(),
		Redis:           loadRedis(),
	}
}
