package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user role CHECK constraint)
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleVolunteer Role = "volunteer"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User represents a user account
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModerate returns true if user can validate and assign reports.
// Admin carries every moderator capability.
func (u *User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// CanWorkTasks returns true if user can claim and complete tasks.
// Admin carries every volunteer capability.
func (u *User) CanWorkTasks() bool {
	return u.Role == RoleVolunteer || u.Role == RoleAdmin
}

// CanSubmitReports returns true if user can file new reports
func (u *User) CanSubmitReports() bool {
	return u.Role == RoleCitizen || u.Role == RoleModerator || u.Role == RoleAdmin
}

// ValidRoles returns list of valid roles for registration
func ValidRoles() []Role {
	return []Role{RoleCitizen, RoleVolunteer, RoleModerator, RoleAdmin}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
