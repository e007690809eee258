package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	result := r.db.WithContext(ctx).Create(category)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create category",
			zap.String("name", category.Name),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

// GetByNameFold matches a category name case-insensitively, so "Food" and
// "food" count as duplicates.
func (r *CategoryRepository) GetByNameFold(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	result := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&category)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	result := r.db.WithContext(ctx).Order("id").Find(&categories)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to list categories", zap.Error(result.Error))
		return nil, result.Error
	}
	return categories, nil
}
