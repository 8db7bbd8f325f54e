/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Wires URLs to the reporting handlers. Chi router with the standard
  middleware stack: request logging, panic recovery, request IDs, and
  CORS for the React frontend.

ROUTE GROUPS:
  /api/health                 Liveness probe
  /api/reports/admin          Unscoped report (admin dashboards)
  /api/reports/users/{id}     Client-scoped report + loyalty + savings
  /api/users/{id}/loyalty     Loyalty score only
  /api/loans/{id}/schedule    Per-loan repayment summary

  Report endpoints take ?period=day|week|month|quarter|year|custom and,
  for custom, ?start=YYYY-MM-DD&end=YYYY-MM-DD.

SECURITY NOTE:
  No authentication middleware. Auth and sessions are owned by the
  hosting platform in front of this service.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all reporting routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/admin", h.AdminReport)
			r.Get("/users/{id}", h.UserReport)
		})

		r.Get("/users/{id}/loyalty", h.UserLoyalty)
		r.Get("/loans/{id}/schedule", h.LoanSchedule)
	})

	return r
}
