package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/internal/repository"
	"github.com/budgetly/expense-tracker/pkg/cache"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// ExpenseService records transactions and serves the aggregate views. The
// per-category and per-date totals are cached per user in redis; any write
// invalidates that user's entries. Cache trouble never fails a request, it
// only falls back to the database.
type ExpenseService struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
	cache      *cache.Client
	cacheTTL   time.Duration
}

func NewExpenseService(
	expenses *repository.ExpenseRepository,
	categories *repository.CategoryRepository,
	cacheClient *cache.Client,
	cacheTTL time.Duration,
) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		cache:      cacheClient,
		cacheTTL:   cacheTTL,
	}
}

func (s *ExpenseService) Add(ctx context.Context, userID uint, req *dto.AddExpenseRequest) error {
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expense := &model.Expense{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.invalidateAggregates(ctx, userID)

	logger.GetLogger().Info("Expense added",
		zap.Uint("user_id", userID),
		zap.Uint("category_id", req.CategoryID),
		zap.Int64("amount", req.Amount),
	)
	return nil
}

func (s *ExpenseService) List(ctx context.Context, userID uint) ([]dto.ExpenseItem, error) {
	items, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return items, nil
}

func (s *ExpenseService) CategoryTotals(ctx context.Context, userID uint) ([]dto.CategoryTotal, error) {
	key := categoryTotalsKey(userID)

	var cached []dto.CategoryTotal
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.GetLogger().Warn("Aggregate cache read failed",
			zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	totals, err := s.expenses.TotalsByCategory(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.cache.SetJSON(ctx, key, totals, s.cacheTTL); err != nil {
		logger.GetLogger().Warn("Aggregate cache write failed",
			zap.String("key", key), zap.Error(err))
	}
	return totals, nil
}

func (s *ExpenseService) DateTotals(ctx context.Context, userID uint, incomeOnly bool) ([]dto.DateTotal, error) {
	key := dateTotalsKey(userID, incomeOnly)

	var cached []dto.DateTotal
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.GetLogger().Warn("Aggregate cache read failed",
			zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	totals, err := s.expenses.TotalsByDate(ctx, userID, incomeOnly)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.cache.SetJSON(ctx, key, totals, s.cacheTTL); err != nil {
		logger.GetLogger().Warn("Aggregate cache write failed",
			zap.String("key", key), zap.Error(err))
	}
	return totals, nil
}

func (s *ExpenseService) Filtered(ctx context.Context, userID uint, filter dto.ExpenseFilter) ([]dto.FilteredExpense, error) {
	items, err := s.expenses.Filter(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return items, nil
}

func (s *ExpenseService) invalidateAggregates(ctx context.Context, userID uint) {
	err := s.cache.Delete(ctx,
		categoryTotalsKey(userID),
		dateTotalsKey(userID, false),
		dateTotalsKey(userID, true),
	)
	if err != nil {
		logger.GetLogger().Warn("Aggregate cache invalidation failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}
}

func categoryTotalsKey(userID uint) string {
	return fmt.Sprintf("agg:category:%d", userID)
}

func dateTotalsKey(userID uint, incomeOnly bool) string {
	if incomeOnly {
		return fmt.Sprintf("agg:date:%d:income", userID)
	}
	return fmt.Sprintf("agg:date:%d:spending", userID)
}
