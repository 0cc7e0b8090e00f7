package models

import "time"

// User roles. Accountants may lock and unlock timesheet months.
const (
	RoleUser       = "user"
	RoleAccountant = "accountant"
)

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:64"`
	Role         string `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"` // account lockout after repeated bad passwords
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}

// IsAccountant reports whether the user holds the elevated role.
func (u *User) IsAccountant() bool {
	return u.Role == RoleAccountant
}
