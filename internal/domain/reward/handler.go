package reward

import (
	"net/http"

	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/response"
)

// Handler handles reward HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates reward handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRewards returns the caller's reward state
// GET /rewards
func (h *Handler) GetRewards(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.GetRewards(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, resp)
}
