package httpapi

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/velmark/skyroute/internal/obs"
)

// NewRouter wires the handler behind the standard middleware chain.
func NewRouter(h *Handler, metrics *obs.Metrics, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}).Handler)

	r.Use(MetricsMiddleware(metrics))
	r.Use(LoggingMiddleware(logger))

	r.Get("/v1/route", h.Route)
	r.Get("/v1/airports", h.Airports)
	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
