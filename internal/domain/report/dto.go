package report

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest carries the multipart form fields of a new report.
// The photo itself is handled by the upload service before the record is
// persisted.
type CreateReportRequest struct {
	Category     string   `json:"category" validate:"required,min=2,max=100"`
	Description  string   `json:"description" validate:"required,min=2,max=2000"`
	Severity     string   `json:"severity" validate:"omitempty,severity"`
	LocationText string   `json:"location_text" validate:"required,min=2,max=500"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsAnonymous  bool     `json:"is_anonymous"`
}

// ValidateReportRequest for POST /reports/{id}/validate
type ValidateReportRequest struct {
	IsValid *bool  `json:"is_valid"`
	Notes   string `json:"notes" validate:"max=2000"`
}

// Valid reports whether the moderator accepted the report; the original
// form treats a missing flag as acceptance.
func (r *ValidateReportRequest) Valid() bool {
	return r.IsValid == nil || *r.IsValid
}

// AssignReportRequest for POST /reports/{id}/assign
type AssignReportRequest struct {
	VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
}

// OwnReport is a citizen's report joined with its task state
type OwnReport struct {
	Report
	TaskID     uuid.UUID `db:"task_id" json:"task_id"`
	TaskStatus string    `db:"task_status" json:"task_status"`
	PhotoURL   string    `db:"-" json:"photo_url"`
}

// PendingReport is a queue entry for the moderation view
type PendingReport struct {
	Report
	CitizenName  string `db:"citizen_name" json:"citizen_name"`
	CitizenEmail string `db:"citizen_email" json:"citizen_email"`
	PhotoURL     string `db:"-" json:"photo_url"`
}

// CreateReportResponse returned after submission
type CreateReportResponse struct {
	ReportID  uuid.UUID `json:"report_id"`
	TaskID    uuid.UUID `json:"task_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
