package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	custommw "salespulse/internal/middleware"
)

// RouterConfig carries everything the router needs wired together.
type RouterConfig struct {
	Config         *config.Config
	Logger         *slog.Logger
	DatasetService DatasetServiceInterface
	ErrorHandler   *apierrors.ErrorHandler
	Metrics        *infrastructure.BusinessMetrics
	MetricsHandler http.Handler
	Version        string
}

// NewRouter assembles the full HTTP API.
func NewRouter(rc RouterConfig) chi.Router {
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if rc.ErrorHandler == nil {
		rc.ErrorHandler = apierrors.NewErrorHandler(logger, false)
	}

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))
	r.Use(custommw.StripSlashes)

	if rc.Metrics != nil {
		r.Use(custommw.HTTPMetrics(rc.Metrics))
	}

	if rc.Config != nil && rc.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: rc.Config.Security.AllowedOrigins,
			Logger:         logger,
		}))
	}

	if rc.Config != nil && rc.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			rc.Config.Security.RateLimit.RPS,
			rc.Config.Security.RateLimit.Burst,
			logger,
		)
		r.Use(limiter.Handler)
	}

	r.NotFound(rc.ErrorHandler.NotFound)
	r.MethodNotAllowed(rc.ErrorHandler.MethodNotAllowed)

	maxBody := int64(10 << 20)
	if rc.Config != nil {
		maxBody = rc.Config.Ingest.MaxBodyBytes
	}

	datasetHandler := NewDatasetHandler(rc.DatasetService, logger, rc.ErrorHandler, maxBody)
	healthHandler := NewHealthHandler(logger, rc.Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/datasets", datasetHandler.Routes())

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)
	})

	if rc.MetricsHandler != nil {
		r.Handle("/metrics", rc.MetricsHandler)
	}

	return r
}
