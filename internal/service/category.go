package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/internal/repository"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category, rejecting names that already exist under a
// case-insensitive match.
func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)

	if _, err := s.categories.GetByNameFold(ctx, name); err == nil {
		return nil, apperrors.ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	category := &model.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
	)

	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}, nil
}

func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		res = append(res, dto.CategoryResponse{ID: category.ID, Name: category.Name})
	}
	return res, nil
}
