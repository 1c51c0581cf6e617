// Package http assembles the HTTP API of the mission intelligence service.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the route tree.
type RouterConfig struct {
	ScoringHandler *handlers.ScoringHandler
	HealthHandler  *handlers.HealthHandler

	Logger        logging.Logger
	LoggingConfig *middleware.LoggingConfig
	// MetricsCollector serves /metrics; AppMetrics records per-request series.
	MetricsCollector prometheus.MetricsCollector
	AppMetrics       middleware.HTTPRecorder
	MetricsPath      string

	CORSOrigins []string
}

// NewRouter constructs the route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins...)))
	}

	if cfg.Logger != nil {
		lc := middleware.DefaultLoggingConfig()
		if cfg.LoggingConfig != nil {
			lc = *cfg.LoggingConfig
		}
		r.Use(middleware.RequestLogging(cfg.Logger, lc))
	}
	if cfg.AppMetrics != nil {
		r.Use(middleware.RequestMetrics(cfg.AppMetrics))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerScoringRoutes(api, cfg.ScoringHandler)
	})

	return r
}

// registerScoringRoutes mirrors every endpoint of the ML service.
func registerScoringRoutes(r chi.Router, h *handlers.ScoringHandler) {
	if h == nil {
		return
	}
	r.Post("/score/comprehensive", h.ComprehensiveScore())
	r.Post("/price/recommend", h.RecommendPrice())
	r.Post("/abuse/detect", h.DetectAbuse())
	r.Post("/match/semantic", h.SemanticMatch())
	r.Post("/match/intelligent", h.SemanticMatch())
	r.Post("/match/inverse", h.InverseMatch())
	r.Post("/predict/success", h.PredictSuccess())
	r.Post("/optimize/pricing-realtime", h.NeuralPricing())
	r.Post("/analyze/behavior", h.AnalyzeBehavior())
	r.Post("/analyze/sentiment", h.AnalyzeSentiment())
	r.Post("/negotiate/price", h.SuggestNegotiation())
	r.Post("/brief/analyze", h.StandardizeBrief())
	r.Post("/trust/calculate", h.CalculateTrust())
	r.Post("/market/heat", h.MarketHeat())

	r.Get("/projects/{id}/preview-scoring", h.PreviewScoring)
	r.Post("/projects/{id}/preview-scoring", h.PreviewScoring)

	r.Get("/stats", h.Stats)
	r.Put("/ml/offline", h.SetOffline)
}

//Personal.AI order the ending
