package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"team-schedule-service/internal/app/schedule"
	"team-schedule-service/internal/cache"
	"team-schedule-service/internal/calendar"
	"team-schedule-service/internal/config"
	httpserver "team-schedule-service/internal/http"
	"team-schedule-service/internal/http/handlers"
	"team-schedule-service/internal/http/middleware"
	"team-schedule-service/internal/logging"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/providers"
	"team-schedule-service/internal/refresher"
	"team-schedule-service/internal/store"
	"team-schedule-service/internal/window"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	viewService   *schedule.Service
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	oddsProvider  providers.OddsProvider
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and refresher wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	scheduleProvider := factory.buildSchedule(cfg)
	oddsProvider := factory.buildOdds(cfg)

	referenceLoc := providers.ResolveTimezone(cfg.Window.ReferenceTZ)
	localZone := providers.ResolveTimezone(cfg.Window.OddsLocalDateTZ)

	memoryStore := store.NewMemoryStore()
	restoreSnapshot(cfg, memoryStore, logger)
	filter := window.New(referenceLoc, cfg.Window.SeasonKeepUncompleted)
	viewSvc := schedule.NewService(memoryStore, filter, cfg.Catalog, logger, recorder)

	ref := refresher.New(refresher.Options{
		Catalog:   cfg.Catalog,
		Schedule:  scheduleProvider,
		Odds:      oddsProvider,
		Store:     memoryStore,
		Writer:    buildSnapshotWriter(cfg),
		Cache:     buildCacheWriter(cfg),
		Logger:    logger,
		Metrics:   recorder,
		Interval:  cfg.RefreshInterval,
		LocalZone: localZone,
	})

	httpSrv := buildHTTPServer(cfg, viewSvc, ref, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		viewService:   viewSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		refresher:     ref,
		oddsProvider:  oddsProvider,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, viewSvc *schedule.Service, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		viewService: viewSvc,
		httpServer:  httpSrv,
		refresher:   ref,
	}
}

func buildSnapshotWriter(cfg config.Config) refresher.SnapshotWriter {
	if !cfg.Snapshots.Enabled {
		return nil
	}
	return snapshotsWriter(cfg)
}

func buildCacheWriter(cfg config.Config) refresher.CacheWriter {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return cache.NewRedisWriter(client)
}

func buildHTTPServer(cfg config.Config, viewSvc *schedule.Service, ref Refresher, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() refresher.Status
	if ref != nil {
		statusFn = ref.Status
	}

	cal := calendar.NewBuilder(cfg.Catalog)
	handler := handlers.NewHandler(viewSvc, cal, logger, statusFn)

	var admin *handlers.AdminHandler
	if cfg.Snapshots.AdminToken != "" {
		if concrete, ok := ref.(*refresher.Refresher); ok {
			admin = handlers.NewAdminHandler(concrete, cfg.Snapshots.AdminToken, logger)
		}
	}

	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop refresher", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop the odds pacing ticker when present.
	if rl, ok := s.oddsProvider.(interface{ Close() }); ok {
		rl.Close()
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
