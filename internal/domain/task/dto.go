package task

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CompleteRequest carries the multipart form fields of a completion. The
// proof photo itself is handled by the upload service.
type CompleteRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// AvailableTask is a pool entry: a pending task on a pending or valid
// report, with enough report context for a volunteer to pick work.
type AvailableTask struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ReportID        uuid.UUID       `db:"report_id" json:"report_id"`
	Category        string          `db:"category" json:"category"`
	Description     string          `db:"description" json:"description"`
	Severity        string          `db:"severity" json:"severity"`
	LocationText    string          `db:"location_text" json:"location_text"`
	Latitude        sql.NullFloat64 `db:"latitude" json:"latitude,omitempty"`
	Longitude       sql.NullFloat64 `db:"longitude" json:"longitude,omitempty"`
	PhotoKey        string          `db:"photo_key" json:"-"`
	PhotoURL        string          `db:"-" json:"photo_url"`
	ReportCreatedAt time.Time       `db:"report_created_at" json:"report_created_at"`
}

// MyTask is a volunteer's task joined with report context and, when
// completed, the proof row.
type MyTask struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	ReportID      uuid.UUID      `db:"report_id" json:"report_id"`
	Status        Status         `db:"status" json:"status"`
	AssignedAt    sql.NullTime   `db:"assigned_at" json:"assigned_at,omitempty"`
	CompletedAt   sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
	Category      string         `db:"category" json:"category"`
	Description   string         `db:"description" json:"description"`
	Severity      string         `db:"severity" json:"severity"`
	LocationText  string         `db:"location_text" json:"location_text"`
	PhotoKey      string         `db:"photo_key" json:"-"`
	PhotoURL      string         `db:"-" json:"photo_url"`
	ProofPhotoKey sql.NullString `db:"proof_photo_key" json:"-"`
	ProofPhotoURL string         `db:"-" json:"proof_photo_url,omitempty"`
	ProofNotes    sql.NullString `db:"proof_notes" json:"proof_notes,omitempty"`
}

// ManagedTask is a moderator's management view row
type ManagedTask struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	ReportID      uuid.UUID      `db:"report_id" json:"report_id"`
	Status        Status         `db:"status" json:"status"`
	AssignedAt    sql.NullTime   `db:"assigned_at" json:"assigned_at,omitempty"`
	CompletedAt   sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
	Category      string         `db:"category" json:"category"`
	Description   string         `db:"description" json:"description"`
	Severity      string         `db:"severity" json:"severity"`
	LocationText  string         `db:"location_text" json:"location_text"`
	ReportStatus  string         `db:"report_status" json:"report_status"`
	VolunteerName sql.NullString `db:"volunteer_name" json:"volunteer_name,omitempty"`
}

// ManagedFilter narrows the moderator task-management view
type ManagedFilter struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending assigned in_progress completed"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Search   string `json:"search" validate:"omitempty,max=200"`
}

// CompleteResponse returned after a successful completion
type CompleteResponse struct {
	TaskID      uuid.UUID `json:"task_id"`
	Status      Status    `json:"status"`
	CompletedAt time.Time `json:"completed_at"`
	ProofURL    string    `json:"proof_url"`
}
