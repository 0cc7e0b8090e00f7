package models

import "time"

// WorkedHours is a single day's time entry against a project.
// Owned exclusively by the creating user; every query is scoped by UserID.
type WorkedHours struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"index;not null"`
	Project     string    `gorm:"size:64;not null"`
	Hours       float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	Overtime    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
