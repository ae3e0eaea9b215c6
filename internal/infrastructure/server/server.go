package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/griffincancode/refreshrated/internal/api/http"
	"github.com/griffincancode/refreshrated/internal/api/middleware"
	"github.com/griffincancode/refreshrated/internal/infrastructure/config"
	"github.com/griffincancode/refreshrated/internal/infrastructure/logging"
	"github.com/griffincancode/refreshrated/internal/infrastructure/monitoring"
	"github.com/griffincancode/refreshrated/internal/refreshrate"
)

// Server wraps the HTTP server and its dependencies: the refresh-rate
// engine, router, and shared infrastructure.
type Server struct {
	router  *gin.Engine
	engine  *refreshrate.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer constructs a Server: it loads the mode catalog, builds the
// refresh-rate Engine, and wires the HTTP control surface described in
// SPEC_FULL.md §6.2.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing refresh rate engine server",
		zap.String("port", cfg.Server.Port),
		zap.String("catalogPath", cfg.Engine.CatalogPath),
	)

	metrics := monitoring.NewMetrics()
	logger.Info("performance monitoring initialized")

	doc, err := config.LoadCatalog(cfg.Engine.CatalogPath)
	if err != nil {
		logger.Warn("falling back to built-in catalog", zap.Error(err))
		doc = config.DefaultCatalogDocument()
	}
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	rrEngine := refreshrate.New(catalog, refreshrate.ModeID(doc.CurrentMode), refreshrate.Options{
		FrameRateMultipleThreshold: refreshrate.Fps(cfg.Engine.FrameRateMultipleThreshold),
		EnableFrameRateOverride:    cfg.Engine.EnableFrameRateOverride,
		Logger:                     logger.Logger,
	})
	if err := rrEngine.SetDisplayManagerPolicy(doc.Policy()); err != nil {
		return nil, fmt.Errorf("installing initial policy: %w", err)
	}
	logger.Info("engine initialized",
		zap.Int("catalogSize", len(catalog)),
		zap.Int64("currentMode", doc.CurrentMode),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(rrEngine, metrics, logger.Logger)
	metricsAggregator := apihttp.NewMetricsAggregator(metrics)

	router.GET("/health", handlers.Health)
	router.GET("/refresh-rate/current", handlers.CurrentRefreshRate)
	router.POST("/refresh-rate/policy", handlers.SetDisplayManagerPolicy)
	router.POST("/refresh-rate/policy/override", handlers.SetOverridePolicy)
	router.POST("/refresh-rate/mode", handlers.SetCurrentModeID)
	router.POST("/refresh-rate/best", handlers.BestRefreshRate)
	router.POST("/refresh-rate/overrides", handlers.FrameRateOverrides)
	router.GET("/refresh-rate/idle-action", handlers.IdleTimerAction)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", metricsAggregator.GetAggregatedMetrics)
	router.GET("/metrics/dashboard", metricsAggregator.GetMetricsDashboard)

	logger.Info("server initialized successfully")

	return &Server{
		router:  router,
		engine:  rrEngine,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close flushes the logger. The engine holds no I/O resources to release.
func (s *Server) Close() error {
	s.logger.Info("shutting down server...")
	s.logger.Sync()
	return nil
}

// Engine exposes the underlying refresh-rate engine, primarily for tests
// that want to drive it directly alongside the HTTP surface.
func (s *Server) Engine() *refreshrate.Engine {
	return s.engine
}
