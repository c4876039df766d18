package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/confessd-dev/confessd/internal/setup"
	"github.com/confessd-dev/confessd/shared/middleware/metrics"
)

// New configures the local HTTP surface consumed by the presentation layer.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	h := deps.Handler

	r.Route("/v1", func(r chi.Router) {
		r.Get("/feed", h.GetFeed)
		r.Post("/confessions", h.CreateConfession)
		r.Post("/confessions/{id}/reactions/{kind}", h.React)
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.PutTheme)
		r.Get("/identity", h.GetIdentity)
	})

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
