/*
server.go - HTTP router and middleware configuration

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for frontend

SECURITY NOTE:

	No authentication middleware. All endpoints are public; put this behind
	a gateway that authenticates.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/projects/{projectKey}", func(r chi.Router) {
			r.Route("/allocations", func(r chi.Router) {
				r.Get("/", h.ListAllocations)
				r.Post("/", h.CreateAllocation)
				r.Get("/{accountId}/resolve", h.ResolveAllocation)
			})

			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", h.ListSnapshots)
				r.Post("/", h.BuildSnapshot)
			})
		})

		r.Route("/allocations", func(r chi.Router) {
			r.Put("/{id}", h.UpdateAllocation)
			r.Delete("/{id}", h.DeleteAllocation)
		})
	})

	return r
}
