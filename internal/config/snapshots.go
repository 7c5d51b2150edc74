package config

// SnapshotConfig controls on-disk snapshot persistence of the canonical
// event list.
type SnapshotConfig struct {
	Enabled       bool
	RetentionDays int
	Folder        string
	AdminToken    string // reused for the admin refresh endpoint auth
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       boolEnvOrDefault(envSnapshotOn, defaultSnapshotOn),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		Folder:        envOrDefault(envSnapshotFolder, defaultSnapshotFolder),
		AdminToken:    envOrDefault(envAdminToken, ""),
	}
}

// RedisConfig enables the optional write-through cache of the current
// annotated view. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func loadRedis() RedisConfig {
	return RedisConfig{
		Addr:     envOrDefault(envRedisAddr, ""),
		Password: envOrDefault(envRedisPassword, ""),
		DB:       intEnvOrDefault(envRedisDB, 0),
	}
}
