package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/expensetracker/internal/adapter/http/handler"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	"github.com/iho/expensetracker/internal/infrastructure/metrics"
	"github.com/iho/expensetracker/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler   *handler.EntryHandler
	SummaryHandler *handler.SummaryHandler
	RateHandler    *handler.RateHandler
	HealthHandler  *handler.HealthHandler

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).
				WithTTL(cfg.IdempotencyTTL).
				WithMetrics(cfg.Metrics).
				WithLogger(cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Collections
		r.Route("/{variant:(expenses|incomes)}", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Delete("/", cfg.EntryHandler.Clear)
		})

		// Single entries
		r.Route("/entries/{id}", func(r chi.Router) {
			r.Get("/", cfg.EntryHandler.Get)
			r.Patch("/", cfg.EntryHandler.Update)
			r.Delete("/", cfg.EntryHandler.Delete)
		})

		// Reports
		r.Get("/summary", cfg.SummaryHandler.Summary)
		r.Get("/insights", cfg.SummaryHandler.Insights)
		r.Get("/categories", cfg.SummaryHandler.Categories)

		// Exchange rates
		r.Get("/rates", cfg.RateHandler.Show)
		r.Post("/rates/refresh", cfg.RateHandler.Refresh)
		r.Get("/convert", cfg.RateHandler.Convert)
	})

	return r
}
