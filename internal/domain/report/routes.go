package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns report routes. Submission requires a reporter role,
// listing your own reports only needs a valid token, and validation and
// assignment require a moderator.
func (h *Handler) Routes(authMiddleware, reporterMiddleware, moderatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/my", h.ListMy)

	r.Group(func(r chi.Router) {
		r.Use(reporterMiddleware)
		r.Post("/", h.Create)
	})

	r.Group(func(r chi.Router) {
		r.Use(moderatorMiddleware)
		r.Get("/pending", h.ListPending)
		r.Post("/{id}/validate", h.Validate)
		r.Post("/{id}/assign", h.Assign)
	})

	return r
}
