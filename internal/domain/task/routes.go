package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns task routes. Volunteers work the pool; the management
// view requires a moderator.
func (h *Handler) Routes(authMiddleware, volunteerMiddleware, moderatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(volunteerMiddleware)
		r.Get("/available", h.ListAvailable)
		r.Get("/my", h.ListMine)
		r.Post("/{id}/claim", h.Claim)
		r.Post("/{id}/start", h.Start)
		r.Post("/{id}/complete", h.Complete)
	})

	r.Group(func(r chi.Router) {
		r.Use(moderatorMiddleware)
		r.Get("/manage", h.ListManaged)
	})

	return r
}
