package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
	"team-schedule-service/internal/logging"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/providers"
	"team-schedule-service/internal/store"
	"team-schedule-service/internal/timeutil"
)

const defaultInterval = 15 * time.Minute

// SnapshotWriter persists event snapshots to disk.
type SnapshotWriter interface {
	WriteEventsSnapshot(date string, snapshot store.Snapshot) error
}

// CacheWriter mirrors event snapshots into a shared cache.
type CacheWriter interface {
	WriteEvents(ctx context.Context, date string, evs []events.Event) error
}

// Refresher periodically rebuilds the full schedule+odds snapshot and
// swaps it into the store in one operation. Schedule sports are fetched
// concurrently; odds leagues are fetched one at a time to respect the
// odds provider's quota.
type Refresher struct {
	catalog   config.Catalog
	schedule  providers.ScheduleProvider
	odds      providers.OddsProvider
	store     *store.MemoryStore
	writer    SnapshotWriter
	cache     CacheWriter
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	localZone *time.Location
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Options collects the refresher's collaborators. Odds, Writer and
// Cache are optional; a nil value disables that concern.
type Options struct {
	Catalog   config.Catalog
	Schedule  providers.ScheduleProvider
	Odds      providers.OddsProvider
	Store     *store.MemoryStore
	Writer    SnapshotWriter
	Cache     CacheWriter
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
	Interval  time.Duration
	LocalZone *time.Location
	Now       func() time.Time
}

// New constructs a Refresher with sane defaults.
func New(opts Options) *Refresher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Refresher{
		catalog:   opts.Catalog,
		schedule:  opts.Schedule,
		odds:      opts.Odds,
		store:     opts.Store,
		writer:    opts.Writer,
		cache:     opts.Cache,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		interval:  interval,
		localZone: opts.LocalZone,
		now:       now,
		done:      make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		r.logInfo("refresher started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		// Initial refresh to warm data on boot.
		r.RefreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.ticker.C:
				r.RefreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// RefreshOnce runs one full refresh cycle: fetch all schedules, fetch
// odds, build the snapshot and swap it in. A sport whose schedule fetch
// fails contributes nothing this cycle; the snapshot still replaces the
// previous one.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := time.Now()
	r.recordAttempt(start)

	evs, fetchErr := r.fetchSchedules(ctx)
	indexes := r.fetchOddsIndexes(ctx)

	snap := store.Snapshot{
		Events:      evs,
		Indexes:     indexes,
		RefreshedAt: r.now().UTC(),
	}
	if r.store != nil {
		r.store.Replace(snap)
	}

	if r.metrics != nil {
		r.metrics.RecordRefreshCycle(time.Since(start), fetchErr)
	}
	if fetchErr != nil {
		r.recordFailure(fetchErr, start)
	} else {
		r.recordSuccess(start)
	}

	today := timeutil.FormatDate(r.now().UTC())
	if r.writer != nil {
		if writeErr := r.writer.WriteEventsSnapshot(today, snap); writeErr != nil {
			r.logError("snapshot write failed", writeErr)
		}
	}
	if r.cache != nil {
		if cacheErr := r.cache.WriteEvents(ctx, today, evs); cacheErr != nil {
			r.logError("cache write failed", cacheErr)
		}
	}

	r.logInfo("refreshed schedule",
		logging.FieldCount, len(evs),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return fetchErr
}

// fetchSchedules runs one fetch per catalog sport concurrently, joins
// the results in the order the sports were submitted, then sorts the
// combined list by start time. A failed sport yields an empty slice so
// the indexed join never shifts.
func (r *Refresher) fetchSchedules(ctx context.Context) ([]events.Event, error) {
	sports := r.catalog.Sports
	results := make([][]events.Event, len(sports))

	var firstErr error
	var errMu sync.Mutex
	var wg sync.WaitGroup

	for i, sport := range sports {
		wg.Add(1)
		go func(i int, sport config.Sport) {
			defer wg.Done()
			evs, err := r.schedule.FetchSchedule(ctx, sport)
			if err != nil {
				r.logError("schedule fetch failed", err, slog.String(logging.FieldSport, sport.Key))
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			results[i] = evs
		}(i, sport)
	}
	wg.Wait()

	merged := make([]events.Event, 0)
	for _, evs := range results {
		merged = append(merged, evs...)
	}
	events.SortByStart(merged)
	return merged, firstErr
}

// fetchOddsIndexes fetches each odds league in turn and builds one
// index per sport key. A failed league logs and moves on; the other
// leagues still get fresh indexes.
func (r *Refresher) fetchOddsIndexes(ctx context.Context) map[string]*odds.Index {
	indexes := make(map[string]*odds.Index)
	if r.odds == nil || !r.catalog.OddsEnabled {
		return indexes
	}

	matcher := odds.TeamMatcher{
		Substrings: r.catalog.MatchSubstrings,
		Excludes:   r.catalog.MatchExcludes,
	}

	for _, sport := range r.catalog.Sports {
		if sport.OddsKey == "" {
			continue
		}
		games, err := r.odds.FetchOdds(ctx, sport.OddsKey)
		if err != nil {
			if rlErr, ok := providers.AsRateLimitError(err); ok && r.metrics != nil {
				r.metrics.RecordRateLimit(rlErr.Provider, rlErr.RetryAfter)
			}
			r.logError("odds fetch failed", err, slog.String(logging.FieldSport, sport.Key))
			continue
		}
		indexes[sport.Key] = odds.BuildIndex(odds.BuildConfig{
			SportKey:  sport.OddsKey,
			TeamKey:   r.catalog.TeamKey,
			Matcher:   matcher,
			LocalZone: r.localZone,
		}, games)
	}
	return indexes
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Refresher) logError(msg string, err error, attrs ...any) {
	if r.logger != nil {
		r.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
