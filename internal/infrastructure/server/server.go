package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/mechdyane/desktop/internal/api/http"
	"github.com/mechdyane/desktop/internal/api/middleware"
	"github.com/mechdyane/desktop/internal/api/ws"
	"github.com/mechdyane/desktop/internal/domain/catalog"
	"github.com/mechdyane/desktop/internal/domain/content"
	"github.com/mechdyane/desktop/internal/domain/desktop"
	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/domain/session"
	"github.com/mechdyane/desktop/internal/infrastructure/config"
	"github.com/mechdyane/desktop/internal/infrastructure/logging"
	"github.com/mechdyane/desktop/internal/infrastructure/monitoring"
	"github.com/mechdyane/desktop/internal/infrastructure/resilience"
	"github.com/mechdyane/desktop/internal/infrastructure/storage"
	"github.com/mechdyane/desktop/internal/infrastructure/tracing"
	"github.com/mechdyane/desktop/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	engine   *desktop.Engine
	sessions *session.Manager
	db       *storage.DB
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newServer(cfg, logger)
}

func newServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing desktop server",
		zap.String("port", cfg.Server.Port),
		zap.Int("breakpoint", cfg.Desktop.Breakpoint),
		zap.String("home", cfg.Desktop.HomeWindow),
	)

	// Metrics first, every other component records into them
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	tracer := tracing.New("desktop", logger.Component("trace"))

	cat := catalog.NewDefault()
	loaded, failed, err := catalog.NewSeeder(cat, cfg.Catalog.Dir, logger.Component("catalog")).Seed()
	if err != nil {
		logger.Warn("Failed to seed catalog", zap.Error(err))
	}
	logger.Info("Catalog ready",
		zap.Int("entries", cat.Len()),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed))

	contentCfg, breaker := contentConfig(cfg.Content, cat, logger, metrics)
	engine := desktop.New(desktop.Config{
		InitialZ:      cfg.Desktop.InitialZ,
		Home:          cfg.Desktop.HomeWindow,
		TaskbarHeight: cfg.Desktop.TaskbarHeight,
		QueueSize:     cfg.Desktop.QueueSize,
		Classifier:    geometry.Classifier{Breakpoint: cfg.Desktop.Breakpoint},
		Limits: geometry.Limits{
			Desktop: types.Size{Width: cfg.Desktop.MinWidth, Height: cfg.Desktop.MinHeight},
			Mobile:  types.Size{Width: cfg.Desktop.MobileMinWidth, Height: cfg.Desktop.MobileMinHeight},
		},
		Defaults:  cascade(cfg.Desktop),
		Viewport:  types.Viewport{Width: cfg.Desktop.ViewportWidth, Height: cfg.Desktop.ViewportHeight},
		Catalog:   cat,
		Installed: cfg.Catalog.Installed,
		Content:   contentCfg,
		Logger:    logger.Component("desktop"),
		Metrics:   metrics,
	})

	db, err := storage.Open(cfg.Session.DSN, logger.Component("storage"))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	sessions := session.NewManager(engine, storage.NewSessionStore(db), logger.Component("session")).
		WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(middleware.Recovery(logger.Component("http")))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.AllowOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(engine, sessions, logger, metrics)
	handlers.Register(router)

	wsHandler := ws.NewHandler(engine, ws.Config{
		EventsPerSecond: cfg.Stream.EventsPerSecond,
		Burst:           cfg.Stream.Burst,
		WriteTimeout:    cfg.Stream.WriteTimeout,
		PingInterval:    cfg.Stream.PingInterval,
		AllowOrigins:    cfg.Server.AllowOrigins,
	}, logger.Component("stream"), metrics)
	router.GET("/stream", wsHandler.HandleConnection)

	aggregator := apihttp.NewMetricsAggregator(metrics, engine, sessions, breaker)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/metrics/json", aggregator.GetAggregatedMetrics)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		engine:   engine,
		sessions: sessions,
		db:       db,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// cascade builds window defaults from configuration
func cascade(d config.DesktopConfig) geometry.Cascade {
	c := geometry.DefaultCascade()
	c.Origin = types.Position{X: d.CascadeX, Y: d.CascadeY}
	c.Step = d.CascadeStep
	c.Steps = d.CascadeSteps
	c.DesktopSize = types.Size{Width: d.WindowWidth, Height: d.WindowHeight}
	c.MobileMin = types.Size{Width: d.MobileMinWidth, Height: d.MobileMinHeight}
	return c
}

// contentConfig wires the panel loaders. Files in CONTENT_DIR are tried
// first behind a circuit breaker, and catalog placeholders fill the gaps.
// The breaker is nil when no content directory is configured.
func contentConfig(c config.ContentConfig, cat *catalog.Catalog, logger *logging.Logger, metrics *monitoring.Metrics) (*content.Config, *resilience.Breaker) {
	log := logger.Component("content")
	cc := &content.Config{
		Fallback: content.CatalogLoader{Catalog: cat},
		Timeout:  c.Timeout,
		Logger:   log,
		Metrics:  metrics,
	}
	if c.Dir == "" {
		return cc, nil
	}

	failures := c.BreakerFailures
	cc.Primary = content.DirLoader{Dir: c.Dir}
	cc.Breaker = content.NewBreaker(resilience.Settings{
		Timeout: c.BreakerTimeout,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return cc, cc.Breaker
}

// Handler returns the router for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the engine and serves HTTP until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	engineCtx, stopEngine := context.WithCancel(context.Background())
	defer func() {
		stopEngine()
		<-s.engine.Done()
	}()
	go s.engine.Run(engineCtx)

	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases storage and flushes logs
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close session store", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to close session store: %w", err))
	}
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return errors.Join(errs...)
}
