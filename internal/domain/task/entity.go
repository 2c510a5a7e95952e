package task

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is the work item paired 1:1 with a report. It is created together
// with its report and never on its own.
type Task struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	ReportID            uuid.UUID     `db:"report_id" json:"report_id"`
	AssignedVolunteerID uuid.NullUUID `db:"assigned_volunteer_id" json:"assigned_volunteer_id,omitempty"`
	Status              Status        `db:"status" json:"status"`
	AssignedAt          sql.NullTime  `db:"assigned_at" json:"assigned_at,omitempty"`
	CompletedAt         sql.NullTime  `db:"completed_at" json:"completed_at,omitempty"`
}

// IsClaimable reports whether the task can still enter the claim flow at all.
// Whether a particular volunteer may claim it also depends on ownership.
func (t *Task) IsClaimable() bool {
	return t.Status == StatusPending || t.Status == StatusAssigned
}

// IsOwnedBy reports whether the task is assigned to the given volunteer
func (t *Task) IsOwnedBy(volunteerID uuid.UUID) bool {
	return t.AssignedVolunteerID.Valid && t.AssignedVolunteerID.UUID == volunteerID
}

// Proof is the completion evidence attached to a task, exactly one per
// completed task.
type Proof struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TaskID      uuid.UUID `db:"task_id" json:"task_id"`
	VolunteerID uuid.UUID `db:"volunteer_id" json:"volunteer_id"`
	PhotoKey    string    `db:"photo_key" json:"photo_key"`
	Notes       string    `db:"notes" json:"notes"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
