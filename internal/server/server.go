// Package server implements the settings REST API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/jsonsettings/internal/config"
	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/internal/store"
	"github.com/me/jsonsettings/pkg/model"
)

// Version is reported by the health and discovery endpoints.
const Version = "0.1.0"

// Server is the settings REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestIDMiddleware)
	r.Use(logging.Middleware(s.logger))
	r.Use(corsMiddleware(s.config.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, &model.APIError{
			Code:    model.ErrNotFound,
			Message: "no route for " + r.Method + " " + r.URL.Path,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, &model.APIError{
			Code:    model.ErrValidation,
			Message: "method " + r.Method + " not allowed on " + r.URL.Path,
		})
	})

	r.Get("/", s.handleDiscovery)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleListSettings)
			r.Post("/", s.handleCreateSetting)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSetting)
				r.Put("/", s.handleUpdateSetting)
				r.Delete("/", s.handleDeleteSetting)
			})
		})
	})
}
