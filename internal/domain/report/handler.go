package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/response"
	"github.com/greentrack/greentrack-api/internal/pkg/upload"
	"github.com/greentrack/greentrack-api/internal/pkg/validator"
)

// Handler handles report HTTP requests
type Handler struct {
	service *Service
	uploads *upload.Service
}

// NewHandler creates report handler
func NewHandler(service *Service, uploads *upload.Service) *Handler {
	return &Handler{service: service, uploads: uploads}
}

// Create handles POST /reports
// Multipart form: photo + report fields
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+1024*1024)

	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	req := CreateReportRequest{
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		Severity:     r.FormValue("severity"),
		LocationText: r.FormValue("location_text"),
		IsAnonymous:  r.FormValue("is_anonymous") == "true",
	}
	if v := r.FormValue("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "Invalid latitude")
			return
		}
		req.Latitude = &lat
	}
	if v := r.FormValue("longitude"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "Invalid longitude")
			return
		}
		req.Longitude = &lng
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Photo is required")
		return
	}
	defer file.Close()

	photoKey, err := h.uploads.SavePhoto(r.Context(), file, header, "reports")
	if err != nil {
		switch err {
		case upload.ErrFileRequired:
			response.BadRequest(w, "Photo is required")
		case upload.ErrFileTooLarge:
			response.BadRequest(w, "Photo exceeds maximum size")
		default:
			response.BadRequest(w, "Photo must be a valid jpg or png image")
		}
		return
	}

	citizenID := middleware.GetUserID(r.Context())
	resp, err := h.service.Create(r.Context(), citizenID, &req, photoKey)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, resp)
}

// ListMy handles GET /reports/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	citizenID := middleware.GetUserID(r.Context())

	reports, err := h.service.ListMy(r.Context(), citizenID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// ListPending handles GET /reports/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListPending(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// Validate handles POST /reports/{id}/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ValidateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.Validate(r.Context(), reportID, &req); err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"report_id": reportID.String()})
}

// Assign handles POST /reports/{id}/assign
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req AssignReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.Assign(r.Context(), reportID, &req); err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrReportNotAssigned:
			response.InvalidState(w, "Invalid reports cannot be assigned")
		case ErrInvalidVolunteer:
			response.BadRequest(w, "Target user is not a volunteer")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"report_id": reportID.String()})
}
