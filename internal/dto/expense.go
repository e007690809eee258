package dto

import "time"

type AddExpenseRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// ExpenseItem is one row of the joined listing (expense + category name).
type ExpenseItem struct {
	ID          uint      `json:"id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryTotal is the per-category aggregate.
type CategoryTotal struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// DateTotal is the per-day aggregate.
type DateTotal struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// FilteredExpense is one row of the filtered listing.
type FilteredExpense struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Name   string `json:"name"`
}

// ExpenseFilter carries the optional /expenses/filter query parameters.
type ExpenseFilter struct {
	StartDate  string `form:"sdate"`
	EndDate    string `form:"edate"`
	Amount     *int64 `form:"amount"`
	CategoryID *uint  `form:"category"`
}
