package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/jsonsettings/internal/logging"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Use(ui.FlashMiddleware)

	r.Get("/", ui.HandleIndex)
	r.Get("/health", ui.HandleHealth)

	r.Route("/settings", func(r chi.Router) {
		r.Post("/save", ui.HandleSave)
		r.Post("/{id}/delete", ui.HandleDelete)
	})
}

// Handler returns a router serving the UI with request logging.
func (ui *UI) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestIDMiddleware)
	r.Use(logging.Middleware(ui.logger))
	ui.RegisterRoutes(r)
	return r
}
