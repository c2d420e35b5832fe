package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/practicelog/internal/api/middleware"
	"github.com/good-yellow-bee/practicelog/internal/api/projects"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	projectHandler := projects.NewHandler(s.storage)

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", projectHandler.List)
		r.Post("/", projectHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", projectHandler.GetByID)
			r.Put("/", projectHandler.Update)
			r.Delete("/", projectHandler.Delete)
			r.Post("/practice-sessions", projectHandler.CreateSession)
		})
	})

	// Root banner
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Musician's Dashboard Backend is running."))
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		OK(w, map[string]string{"status": "ok"})
	})

	return r
}
