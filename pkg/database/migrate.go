package database

import (
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/model"
)

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Expense{},
	)
}
