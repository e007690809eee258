package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/dto"
	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// dateTotalRow keeps the raw DATE() scan separate from the wire DTO so the
// service controls the date formatting.
type dateTotalRow struct {
	Date   time.Time
	Amount int64
}

type filteredRow struct {
	Date   time.Time
	Amount int64
	Name   string
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	result := r.db.WithContext(ctx).Create(expense)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create expense",
			zap.Uint("user_id", expense.UserID),
			zap.Uint("category_id", expense.CategoryID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

// ListByUser returns the user's expenses joined with their category name,
// excluding the reserved income category.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uint) ([]dto.ExpenseItem, error) {
	var items []dto.ExpenseItem
	result := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("expenses.id, expenses.amount, expenses.description, expenses.created_at, expenses.updated_at, categories.name AS name").
		Joins("JOIN categories ON expenses.category_id = categories.id").
		Where("expenses.user_id = ? AND categories.name <> ?", userID, constants.IncomeCategory).
		Order("expenses.created_at DESC").
		Scan(&items)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to list expenses",
			zap.Uint("user_id", userID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}
	return items, nil
}

// TotalsByCategory sums the user's amounts grouped by category name.
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID uint) ([]dto.CategoryTotal, error) {
	var totals []dto.CategoryTotal
	result := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("categories.name AS name, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON expenses.category_id = categories.id").
		Where("expenses.user_id = ?", userID).
		Group("categories.name").
		Scan(&totals)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to aggregate by category",
			zap.Uint("user_id", userID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}
	return totals, nil
}

// TotalsByDate sums the user's amounts grouped by calendar day, either for
// the income category only or for everything else.
func (r *ExpenseRepository) TotalsByDate(ctx context.Context, userID uint, incomeOnly bool) ([]dto.DateTotal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("DATE(expenses.created_at) AS date, SUM(expenses.amount) AS amount").
		Joins("JOIN categories ON expenses.category_id = categories.id").
		Where("expenses.user_id = ?", userID)

	if incomeOnly {
		query = query.Where("categories.name = ?", constants.IncomeCategory)
	} else {
		query = query.Where("categories.name <> ?", constants.IncomeCategory)
	}

	var rows []dateTotalRow
	result := query.
		Group("DATE(expenses.created_at)").
		Order("DATE(expenses.created_at)").
		Scan(&rows)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to aggregate by date",
			zap.Uint("user_id", userID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	totals := make([]dto.DateTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, dto.DateTotal{
			Date:   row.Date.Format("2006-01-02"),
			Amount: row.Amount,
		})
	}
	return totals, nil
}

// Filter returns the user's expenses narrowed by the optional date range,
// exact amount and category filters.
func (r *ExpenseRepository) Filter(ctx context.Context, userID uint, filter dto.ExpenseFilter) ([]dto.FilteredExpense, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("expenses.created_at AS date, expenses.amount AS amount, categories.name AS name").
		Joins("JOIN categories ON expenses.category_id = categories.id").
		Where("expenses.user_id = ?", userID)

	if filter.StartDate != "" && filter.EndDate != "" {
		query = query.Where("expenses.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}
	if filter.Amount != nil {
		query = query.Where("expenses.amount = ?", *filter.Amount)
	}
	if filter.CategoryID != nil {
		query = query.Where("categories.id = ?", *filter.CategoryID)
	}

	var rows []filteredRow
	result := query.Order("expenses.created_at").Scan(&rows)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to filter expenses",
			zap.Uint("user_id", userID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	items := make([]dto.FilteredExpense, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.FilteredExpense{
			Date:   row.Date.Format("2006-01-02"),
			Amount: row.Amount,
			Name:   row.Name,
		})
	}
	return items, nil
}
