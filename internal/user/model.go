package user

import (
	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/platform/authz"
)

// User is the persisted account of an admin or a student voter.
type User struct {
	// gorm.Model provides ID, CreatedAt, UpdatedAt, DeletedAt.
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Role is either "admin" or "student".
	Role authz.Role `gorm:"type:varchar(10);not null;default:student" json:"role"`

	// StudentID is the campus registration number. Optional, but unique
	// when present; a pointer so absent IDs are NULL, not "".
	StudentID  *string `gorm:"uniqueIndex" json:"student_id,omitempty"`
	Department string  `json:"department,omitempty"`
	Year       int     `json:"year,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthRole implements authz.Actor.
func (u *User) AuthRole() authz.Role {
	return u.Role
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == authz.RoleAdmin
}
