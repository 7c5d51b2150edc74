package providers

import (
	"context"
	"log/slog"
	"time"

	"team-schedule-service/internal/domain/odds"
)

// rateLimitedOddsProvider wraps an OddsProvider and enforces a minimum
// interval between calls. The odds API meters by monthly quota, so
// spacing calls out is the cheap way to stay inside it.
type rateLimitedOddsProvider struct {
	next     OddsProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedOddsProvider returns an OddsProvider that limits calls
// to the given interval. Calls block until the interval elapses.
func NewRateLimitedOddsProvider(next OddsProvider, interval time.Duration, logger *slog.Logger) OddsProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedOddsProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedOddsProvider) FetchOdds(ctx context.Context, oddsKey string) ([]odds.RawGame, error) {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	return p.next.FetchOdds(ctx, oddsKey)
}

// Close stops the pacing ticker.
func (p *rateLimitedOddsProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
