package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a report
type Status string

const (
	StatusPending    Status = "pending"
	StatusValid      Status = "valid"
	StatusInvalid    Status = "invalid"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Severity represents how urgent a report is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Report represents a citizen-submitted waste/cleanliness issue
type Report struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	CitizenID      uuid.UUID       `db:"citizen_id" json:"citizen_id"`
	Category       string          `db:"category" json:"category"`
	Description    string          `db:"description" json:"description"`
	Severity       Severity        `db:"severity" json:"severity"`
	LocationText   string          `db:"location_text" json:"location_text"`
	Latitude       sql.NullFloat64 `db:"latitude" json:"latitude,omitempty"`
	Longitude      sql.NullFloat64 `db:"longitude" json:"longitude,omitempty"`
	PhotoKey       string          `db:"photo_key" json:"photo_key"`
	Status         Status          `db:"status" json:"status"`
	ModeratorNotes sql.NullString  `db:"moderator_notes" json:"moderator_notes,omitempty"`
	IsAnonymous    bool            `db:"is_anonymous" json:"is_anonymous"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// IsAssignable reports whether a moderator may hand this report to a
// volunteer. Only invalid reports are excluded from the assignable pool.
func (r *Report) IsAssignable() bool {
	return r.Status != StatusInvalid
}
