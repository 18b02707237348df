package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"contextify/internal/gateway/handler"
	"contextify/internal/gateway/middleware"
)

// NewMux wires the REST surface. The per-IP limiter covers the API
// routes; the event socket sits outside it since one long-lived GET per
// conversation is the norm.
func NewMux(h *handler.Handler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/conversations/{id}/events", h.Events)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)

			r.Get("/models", h.ListModels)

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", h.CreateConversation)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetConversation)
					r.Delete("/", h.DeleteConversation)
					r.Post("/reset", h.ResetConversation)
					r.Post("/messages", h.SendMessage)
					r.Post("/form", h.SubmitForm)

					r.Route("/attachments", func(r chi.Router) {
						r.Post("/", h.StageAttachments)
						r.Delete("/{attachmentID}", h.UnstageAttachment)
					})

					r.Route("/capture", func(r chi.Router) {
						r.Post("/start", h.CaptureStart)
						r.Post("/cancel", h.CaptureCancel)
						r.Post("/finish", h.CaptureFinish)
					})
				})
			})
		})
	})

	return r
}
