package server

import (
	"log/slog"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/providers"
	"team-schedule-service/internal/providers/espn"
	"team-schedule-service/internal/providers/fixture"
	"team-schedule-service/internal/providers/theoddsapi"
)

// oddsCallSpacing paces sequential odds-league fetches within a cycle.
const oddsCallSpacing = time.Second

// providerFactory assembles the schedule and odds providers with shared
// wrappers (retry for schedules, rate limiting for odds).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) buildSchedule(cfg config.Config) providers.ScheduleProvider {
	base := f.selectSchedule(cfg)
	return providers.NewRetryingProvider(base, f.logger, f.metrics, cfg.ScheduleSource, 0, 0)
}

func (f providerFactory) selectSchedule(cfg config.Config) providers.ScheduleProvider {
	switch cfg.ScheduleSource {
	case "fixture", "":
		return fixture.NewScheduleProvider(nil)
	case "espn":
		return espn.NewClient(espn.Config{
			BaseURL: cfg.ESPN.BaseURL,
			TeamID:  cfg.Catalog.TeamID,
		})
	default:
		if f.logger != nil {
			f.logger.Warn("unknown schedule provider, falling back to fixture",
				slog.String("provider", cfg.ScheduleSource))
		}
		return fixture.NewScheduleProvider(nil)
	}
}

// buildOdds returns nil when odds are disabled: no API key configured,
// or the catalog opts out entirely.
func (f providerFactory) buildOdds(cfg config.Config) providers.OddsProvider {
	if !cfg.Catalog.OddsEnabled {
		return nil
	}
	if cfg.ScheduleSource == "fixture" || cfg.ScheduleSource == "" {
		return fixture.NewOddsProvider(nil)
	}
	if cfg.OddsAPI.APIKey == "" {
		if f.logger != nil {
			f.logger.Info("odds api key not set, running schedule-only")
		}
		return nil
	}

	client := theoddsapi.NewClient(theoddsapi.Config{
		BaseURL:  cfg.OddsAPI.BaseURL,
		APIKey:   cfg.OddsAPI.APIKey,
		Regions:  cfg.OddsAPI.Regions,
		Recorder: f.metrics,
	})
	return providers.NewRateLimitedOddsProvider(client, oddsCallSpacing, f.logger)
}
