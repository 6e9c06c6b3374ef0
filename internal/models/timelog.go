package models

import (
	"time"
)

// ManualMarker is the sentinel stored in StartClock/EndClock for journal
// rows created by manual balance adjustments instead of a real timer run.
const ManualMarker = "MANUAL"

// TimeLog is one immutable journal row. Rows are appended when a timer
// stops or a manual adjustment is made and are never updated or deleted.
// DurationHours is negative for "remove work" adjustments.
type TimeLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username    string    `gorm:"index;not null" json:"username"`
	ProjectCode string    `gorm:"index;not null" json:"project_code"`
	Day         time.Time `gorm:"index;not null" json:"day"`
	StartClock  string    `gorm:"not null" json:"start_clock"`
	EndClock    string    `gorm:"not null" json:"end_clock"`

	DurationHours float64 `gorm:"not null" json:"duration_hours"`
}

// Manual reports whether this row was written by a manual adjustment.
func (l *TimeLog) Manual() bool {
	return l.StartClock == ManualMarker
}
