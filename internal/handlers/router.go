package handlers

import (
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dependencies groups the handlers served by the router
type Dependencies struct {
	Health *HealthHandler
	Trees  *TreeHandler
	Orders *OrderHandler
}

// NewRouter wires middleware and API routes
func NewRouter(auth config.AuthConfig, deps Dependencies, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// the storefront runs in the browser on another origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", deps.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/trees", deps.Trees.ListTrees)
		r.Post("/orders", deps.Orders.CreateOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(auth))
			r.Post("/seed", deps.Trees.Seed)
		})
	})

	return r
}
