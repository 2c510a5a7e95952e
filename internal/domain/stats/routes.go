package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns stats routes. The dashboard is moderator-only.
func (h *Handler) Routes(authMiddleware, moderatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(moderatorMiddleware)

	r.Get("/", h.Snapshot)

	return r
}
