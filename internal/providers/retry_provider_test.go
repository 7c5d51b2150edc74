package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/metrics"
)

type flakySchedule struct {
	failures int
	calls    int
	events   []events.Event
}

func (f *flakySchedule) FetchSchedule(ctx context.Context, sport config.Sport) ([]events.Event, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("upstream hiccup")
	}
	return f.events, nil
}

func fastProvider(inner ScheduleProvider, recorder *metrics.Recorder, maxAttempts int) ScheduleProvider {
	wrapped := NewRetryingProvider(inner, nil, recorder, "test", maxAttempts, time.Millisecond).(*retryingProvider)
	wrapped.backoffFn = func(int) time.Duration { return 0 }
	return wrapped
}

func TestRetryingProviderRecoversAfterFailure(t *testing.T) {
	inner := &flakySchedule{failures: 2, events: []events.Event{{ID: "1"}}}
	provider := fastProvider(inner, metrics.NewRecorder(), 3)

	evs, err := provider.FetchSchedule(context.Background(), config.Sport{Key: "football"})
	if err != nil {
		t.Fatalf("FetchSchedule: %v", err)
	}
	if len(evs) != 1 || inner.calls != 3 {
		t.Fatalf("expected success on third attempt, calls=%d events=%d", inner.calls, len(evs))
	}
}

func TestRetryingProviderExhaustsAttempts(t *testing.T) {
	inner := &flakySchedule{failures: 10}
	provider := fastProvider(inner, metrics.NewRecorder(), 3)

	if _, err := provider.FetchSchedule(context.Background(), config.Sport{Key: "football"}); err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderStopsOnContextCancel(t *testing.T) {
	inner := &flakySchedule{failures: 10}
	provider := NewRetryingProvider(inner, nil, metrics.NewRecorder(), "test", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.FetchSchedule(ctx, config.Sport{Key: "football"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt before cancel, got %d", inner.calls)
	}
}

type rateLimitedSchedule struct{}

func (rateLimitedSchedule) FetchSchedule(ctx context.Context, sport config.Sport) ([]events.Event, error) {
	return nil, &RateLimitError{Provider: "test", StatusCode: 429, RetryAfter: 5 * time.Second}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	recorder := metrics.NewRecorder()
	provider := fastProvider(rateLimitedSchedule{}, recorder, 2)

	_, err := provider.FetchSchedule(context.Background(), config.Sport{Key: "football"})
	if _, ok := AsRateLimitError(err); !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}

	snap := recorder.Snapshot("test")
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", snap.RateLimitHits)
	}
}

func TestRetryingProviderDefaults(t *testing.T) {
	provider := NewRetryingProvider(&flakySchedule{}, nil, metrics.NewRecorder(), "test", 0, 0).(*retryingProvider)
	if provider.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", provider.maxAttempts)
	}
	if got := provider.backoffFn(2); got != 2*defaultBackoff {
		t.Fatalf("expected linear default backoff, got %s", got)
	}
}
