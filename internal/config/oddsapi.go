package config

const (
	envOddsBaseURL = "ODDS_API_BASE_URL"
	envOddsAPIKey  = "ODDS_API_KEY"
	envOddsRegions = "ODDS_API_REGIONS"

	defaultOddsBaseURL = "https://api.the-odds-api.com/v4/sports"
	defaultOddsRegions = "us"
)

// OddsAPIConfig controls how we talk to the odds API. An empty APIKey
// disables odds fetching entirely; the schedule still serves.
type OddsAPIConfig struct {
	BaseURL string
	APIKey  string
	Regions string
}

func loadOddsAPI() OddsAPIConfig {
	return OddsAPIConfig{
		BaseURL: envOrDefault(envOddsBaseURL, defaultOddsBaseURL),
		APIKey:  envOrDefault(envOddsAPIKey, ""),
		Regions: envOrDefault(envOddsRegions, defaultOddsRegions),
	}
}
