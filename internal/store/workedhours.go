package store

import (
	"context"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/models"

	"gorm.io/gorm"
)

// WorkedHoursStore composes the generic store with calendar queries.
type WorkedHoursStore struct {
	*Store[models.WorkedHours]
}

func NewWorkedHoursStore(db *gorm.DB) *WorkedHoursStore {
	return &WorkedHoursStore{Store: New[models.WorkedHours](db)}
}

// ListMonth returns the user's entries for a calendar month, oldest first.
func (s *WorkedHoursStore) ListMonth(ctx context.Context, userID uint, year, month int) ([]models.WorkedHours, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return s.listRange(ctx, userID, start, end)
}

// ListDay returns the user's entries for a single date.
func (s *WorkedHoursStore) ListDay(ctx context.Context, userID uint, day time.Time) ([]models.WorkedHours, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return s.listRange(ctx, userID, start, start.AddDate(0, 0, 1))
}

func (s *WorkedHoursStore) listRange(ctx context.Context, userID uint, start, end time.Time) ([]models.WorkedHours, error) {
	var entries []models.WorkedHours
	err := s.DB().WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
