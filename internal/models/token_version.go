package models

import "time"

// TokenVersion is the per-user counter embedded in session tokens.
// Bumping it invalidates every token issued with a lower version.
type TokenVersion struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Version   int  `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
