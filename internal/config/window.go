package config

// WindowConfig pins the timezone logic down explicitly.
type WindowConfig struct {
	// ReferenceTZ anchors "today"/"this week" windows and all display
	// grouping, independent of the host clock.
	ReferenceTZ string
	// OddsLocalDateTZ is the zone used to render the odds feed's
	// "local" fallback date keys. Upstream this silently depended on
	// the executing environment's default zone.
	OddsLocalDateTZ string
	// SeasonKeepUncompleted retains season-view events that are not
	// yet completed even when dated in the past.
	SeasonKeepUncompleted bool
}

func loadWindow() WindowConfig {
	return WindowConfig{
		ReferenceTZ:           envOrDefault(envReferenceTZ, defaultReferenceTZ),
		OddsLocalDateTZ:       envOrDefault(envOddsLocalDateTZ, defaultOddsLocalDateTZ),
		SeasonKeepUncompleted: boolEnvOrDefault(envSeasonKeepUncompl, true),
	}
}
