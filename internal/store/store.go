package store

import (
	"context"
	"errors"
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"

	"gorm.io/gorm"
)

// Store is a generic user-scoped CRUD layer over a single gorm model.
// Every read and delete carries a user_id predicate so one user can never
// reach another user's rows by id.
type Store[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// DB exposes the underlying handle for composed stores with custom queries.
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

func (s *Store[T]) Create(ctx context.Context, m *T) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var m T
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Store[T]) List(ctx context.Context, userID uint) ([]T, error) {
	var items []T
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// Update persists all fields of m. Callers must have loaded m through Get
// so the row is known to belong to the user.
func (s *Store[T]) Update(ctx context.Context, m *T) error {
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, userID, id uint) error {
	var m T
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("record not found")
	}
	return nil
}

// translate maps storage errors onto the application taxonomy so raw
// engine error shapes never reach clients.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("record not found")
	case isDuplicate(err):
		return apperr.AlreadyExists("record already exists")
	default:
		return apperr.Wrap(apperr.CodeInternal, "database error", err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite driver surfaces uniqueness violations as plain errors
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
