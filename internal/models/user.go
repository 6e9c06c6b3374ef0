package models

import (
	"time"
)

// User represents a team member account. Passwords are stored in clear
// text on purpose: the tool runs on a trusted shared machine and the
// account only scopes projects and reports, it does not protect data.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Manager  bool   `gorm:"default:false" json:"manager"`

	// Timer state. Working is true exactly when WorkingSince and
	// ActiveProjectCode are both set.
	Working           bool       `gorm:"default:false" json:"working"`
	WorkingSince      *time.Time `json:"working_since"`
	ActiveProjectCode *string    `json:"active_project_code"`
}

// IsTimerConsistent reports whether the working flag agrees with the
// timer fields.
func (u *User) IsTimerConsistent() bool {
	if u.Working {
		return u.WorkingSince != nil && u.ActiveProjectCode != nil
	}
	return u.WorkingSince == nil && u.ActiveProjectCode == nil
}
