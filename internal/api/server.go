package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	// Limiter throttles the calculation routes; nil disables throttling.
	Limiter *RateLimiter
	// Quiet drops the request logger, for tests.
	Quiet bool
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if !opts.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.ListRules)
			r.Get("/{year}", h.GetRules)
		})

		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(RateLimit(opts.Limiter))
			}

			r.Route("/tax", func(r chi.Router) {
				r.Post("/compare", h.Compare)
				r.Post("/compare/batch", h.CompareBatch)
				r.Post("/{regime}", h.CalculateRegime)
			})
			r.Post("/gst/calculate", h.CalculateGST)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", nil)
	})

	return r
}
