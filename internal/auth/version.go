package auth

import (
	"context"
	"errors"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/models"

	"gorm.io/gorm"
)

// VersionStore persists the per-user token version counter.
type VersionStore struct {
	db *gorm.DB
}

func NewVersionStore(db *gorm.DB) *VersionStore {
	return &VersionStore{db: db}
}

// Ensure returns the user's current version, creating the record at
// version 1 on first login.
func (s *VersionStore) Ensure(ctx context.Context, userID uint) (int, error) {
	var tv models.TokenVersion
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&tv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tv = models.TokenVersion{UserID: userID, Version: 1}
		if err := s.db.WithContext(ctx).Create(&tv).Error; err != nil {
			// concurrent first login may have created it already
			if cerr := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&tv).Error; cerr != nil {
				return 0, apperr.Wrap(apperr.CodeInternal, "create token version", err)
			}
		}
		return tv.Version, nil
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "load token version", err)
	}
	return tv.Version, nil
}

// Get returns the stored version. A missing record is a server-side
// inconsistency: login should have created it.
func (s *VersionStore) Get(ctx context.Context, userID uint) (int, error) {
	var tv models.TokenVersion
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&tv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.ErrVersionMissing
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "load token version", err)
	}
	return tv.Version, nil
}

// Increment bumps the version by one and returns the new value. It never
// creates the record: refresh implies a prior successful login, so a
// missing record is fatal rather than lazily repaired.
func (s *VersionStore) Increment(ctx context.Context, userID uint) (int, error) {
	res := s.db.WithContext(ctx).
		Model(&models.TokenVersion{}).
		Where("user_id = ?", userID).
		Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "increment token version", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.ErrVersionMissing
	}
	return s.Get(ctx, userID)
}
