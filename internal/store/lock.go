package store

import (
	"context"
	"errors"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/models"

	"gorm.io/gorm"
)

// LockStore manages per-user month locks. A lock is the existence of a
// LockedMonth row; both directions of SetLock are idempotent.
type LockStore struct {
	db *gorm.DB
}

func NewLockStore(db *gorm.DB) *LockStore {
	return &LockStore{db: db}
}

// validateMonth applies the fail-fast validation order: month bounds,
// year bounds, then the future-month rule. The future rule holds for
// unlocking too, so a mistyped future year surfaces instead of silently
// "unlocking" nothing.
func validateMonth(year, month int, now time.Time) error {
	if month < 1 || month > 12 {
		return apperr.ErrInvalidMonth
	}
	if year < 1900 || year > 9999 {
		return apperr.ErrInvalidYear
	}
	if year > now.Year() || (year == now.Year() && month > int(now.Month())) {
		return apperr.ErrFutureMonth
	}
	return nil
}

// SetLock locks or unlocks a month for the given user.
func (s *LockStore) SetLock(ctx context.Context, userID uint, year, month int, actorID uint, locked bool) error {
	if err := validateMonth(year, month, time.Now()); err != nil {
		return err
	}

	if locked {
		lock := models.LockedMonth{
			UserID:   userID,
			Year:     year,
			Month:    month,
			LockedBy: actorID,
		}
		err := s.db.WithContext(ctx).Create(&lock).Error
		if err != nil && !isDuplicate(err) {
			return translate(err)
		}
		// already locked counts as success
		return nil
	}

	// absence is not an error: unlocking an unlocked month is a no-op
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Delete(&models.LockedMonth{}).Error
	if err != nil {
		return translate(err)
	}
	return nil
}

// IsLocked reports whether the month is locked. No side effects.
func (s *LockStore) IsLocked(ctx context.Context, userID uint, year, month int) (bool, error) {
	var lock models.LockedMonth
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&lock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}
