package database

import (
	"fmt"

	"github.com/domen5/TaskTrail-sub000/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.TokenVersion{},
		&models.LockedMonth{},
		&models.WorkedHours{},
		&models.Project{},
		&models.Customer{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
