package stats

import (
	"net/http"

	"github.com/greentrack/greentrack-api/internal/pkg/response"
)

// Handler handles stats HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates stats handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Snapshot handles GET /stats
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, snap)
}
