package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/response"
	"github.com/greentrack/greentrack-api/internal/pkg/upload"
	"github.com/greentrack/greentrack-api/internal/pkg/validator"
)

// Handler handles task HTTP requests
type Handler struct {
	service *Service
	uploads *upload.Service
}

// NewHandler creates task handler
func NewHandler(service *Service, uploads *upload.Service) *Handler {
	return &Handler{service: service, uploads: uploads}
}

// ListAvailable handles GET /tasks/available?search=
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListAvailable(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, tasks)
}

// ListMine handles GET /tasks/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	volunteerID := middleware.GetUserID(r.Context())

	tasks, err := h.service.ListMine(r.Context(), volunteerID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, tasks)
}

// ListManaged handles GET /tasks/manage?status=&category=&search=
func (h *Handler) ListManaged(w http.ResponseWriter, r *http.Request) {
	filter := ManagedFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	if errors := validator.Validate(&filter); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	tasks, err := h.service.ListManaged(r.Context(), &filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, tasks)
}

// Claim handles POST /tasks/{id}/claim
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	volunteerID := middleware.GetUserID(r.Context())

	if err := h.service.Claim(r.Context(), taskID, volunteerID); err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, map[string]string{"task_id": taskID.String(), "status": string(StatusAssigned)})
}

// Start handles POST /tasks/{id}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	volunteerID := middleware.GetUserID(r.Context())

	if err := h.service.Start(r.Context(), taskID, volunteerID); err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, map[string]string{"task_id": taskID.String(), "status": string(StatusInProgress)})
}

// Complete handles POST /tasks/{id}/complete
// Multipart form: proof_photo + notes
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+1024*1024)

	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	req := CompleteRequest{Notes: r.FormValue("notes")}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	file, header, err := r.FormFile("proof_photo")
	if err != nil {
		response.BadRequest(w, "Proof photo is required")
		return
	}
	defer file.Close()

	proofKey, err := h.uploads.SavePhoto(r.Context(), file, header, "proofs")
	if err != nil {
		switch err {
		case upload.ErrFileRequired:
			response.BadRequest(w, "Proof photo is required")
		case upload.ErrFileTooLarge:
			response.BadRequest(w, "Photo exceeds maximum size")
		default:
			response.BadRequest(w, "Photo must be a valid jpg or png image")
		}
		return
	}

	volunteerID := middleware.GetUserID(r.Context())

	resp, err := h.service.Complete(r.Context(), taskID, volunteerID, &req, proofKey)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, resp)
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch err {
	case ErrTaskNotFound:
		response.NotFound(w, "Task not found")
	case ErrTaskNotOwned:
		response.Forbidden(w, "Task is not assigned to you")
	case ErrTaskAlreadyClaimed:
		response.InvalidState(w, "Task already claimed by another volunteer")
	case ErrTaskNotClaimable:
		response.InvalidState(w, "Task can no longer be claimed")
	case ErrTaskNotCompletable:
		response.InvalidState(w, "Task cannot be completed in its current state")
	case ErrReportNotWorkable:
		response.InvalidState(w, "Report has been marked invalid")
	default:
		response.InternalError(w)
	}
}
