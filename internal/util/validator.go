package util

import (
	"fmt"
	"time"
)

// ValidateHours checks a worked-hours value (positive, at most a day).
func ValidateHours(hours float64) error {
	if hours <= 0 {
		return fmt.Errorf("hours must be positive, got %g", hours)
	}
	if hours > 24 {
		return fmt.Errorf("hours cannot exceed 24, got %g", hours)
	}
	return nil
}

// ValidateDate checks date format (must be YYYY-MM-DD) and returns the parsed day.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateYearMonth checks calendar month bounds.
func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 9999 {
		return fmt.Errorf("year out of range, got %d", year)
	}
	return nil
}
