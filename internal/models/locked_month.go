package models

import "time"

// LockedMonth marks a user's calendar month as read-only.
// Presence of the row means locked; unlocking deletes the row.
type LockedMonth struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_locked_user_month,priority:1"`
	Year      int  `gorm:"not null;uniqueIndex:idx_locked_user_month,priority:2"`
	Month     int  `gorm:"not null;uniqueIndex:idx_locked_user_month,priority:3"` // 1-12
	LockedBy  uint `gorm:"not null"`
	CreatedAt time.Time
}
