package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zayrick/liuren-api/internal/config"
	"github.com/zayrick/liuren-api/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Public:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/bazi
//	POST /api/v1/divinations
//	GET  /api/v1/divinations
//	GET  /api/v1/divinations/{id}
//
// API-key gated:
//
//	DELETE /api/v1/divinations/{id}
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(MetricsMiddleware(m))
	r.Use(CORSMiddleware())

	auth := AuthMiddleware(cfg, logger)

	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/bazi", handlers.GetBazi)

		r.Route("/divinations", func(r chi.Router) {
			r.Post("/", handlers.CreateDivination)
			r.Get("/", handlers.ListDivinations)
			r.Get("/{id}", handlers.GetDivination)
			r.With(auth).Delete("/{id}", handlers.DeleteDivination)
		})
	})

	return r
}
