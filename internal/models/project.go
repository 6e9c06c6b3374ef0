package models

import (
	"time"
)

// Project is an hour budget owned by one user. RemainingHours is a
// running total maintained by the ledger; manual adjustments may push
// it below zero or above AllocatedHours, neither bound is enforced.
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code           string  `gorm:"uniqueIndex;not null" json:"code"`
	Name           string  `gorm:"not null" json:"name"`
	AllocatedHours float64 `gorm:"not null" json:"allocated_hours"`
	RemainingHours float64 `gorm:"not null" json:"remaining_hours"`
	Owner          string  `gorm:"index;not null" json:"owner"`
	Finished       bool    `gorm:"default:false" json:"finished"`
}

// ConsumedHours returns the hours booked against the budget so far.
func (p *Project) ConsumedHours() float64 {
	return p.AllocatedHours - p.RemainingHours
}
