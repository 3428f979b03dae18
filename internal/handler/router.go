package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/commission-calculator/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса расчёта комиссионных.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", h.Validate)
		r.Post("/calculate", h.Calculate)
		r.Post("/report", h.ExportReport)

		r.Group(func(r chi.Router) {
			r.Use(h.session.Middleware)

			r.Post("/records", h.SaveRecord)
			r.Get("/records", h.GetRecords)
			r.Delete("/records", h.ClearRecords)
			r.Get("/records/export", h.ExportRecords)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
