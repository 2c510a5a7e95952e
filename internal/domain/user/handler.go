package user

import (
	"net/http"

	"github.com/greentrack/greentrack-api/internal/pkg/response"
)

// Handler handles user directory HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates user handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// VolunteerView is the directory entry exposed to moderators
type VolunteerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListVolunteers lists volunteers for assignment
// GET /users/volunteers
func (h *Handler) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.repo.ListByRole(r.Context(), RoleVolunteer)
	if err != nil {
		response.InternalError(w)
		return
	}

	views := make([]VolunteerView, 0, len(volunteers))
	for _, v := range volunteers {
		views = append(views, VolunteerView{
			ID:    v.ID.String(),
			Name:  v.Name,
			Email: v.Email,
		})
	}

	response.OK(w, views)
}
