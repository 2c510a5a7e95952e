package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user directory routes
func (h *Handler) Routes(authMiddleware, moderatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(moderatorMiddleware)

	r.Get("/volunteers", h.ListVolunteers)

	return r
}
