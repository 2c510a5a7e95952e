package reward

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns reward routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.GetRewards)

	return r
}
