package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/service"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Add records a transaction for the authenticated user.
func (h *ExpenseHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			constants.BuildResponse(http.StatusBadRequest, bindingErrorMessage(err)))
		return
	}

	if err := h.expenseService.Add(c.Request.Context(), userID, &req); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "Add successfully"))
}

// List returns the user's spending joined with category names.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.expenseService.List(c.Request.Context(), userID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, "Ok", items))
}

// CategoryWise returns the user's totals grouped by category.
func (h *ExpenseHandler) CategoryWise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	totals, err := h.expenseService.CategoryTotals(c.Request.Context(), userID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, "Ok", totals))
}

// DateWise returns daily totals; ?q=income selects income entries only,
// anything else excludes them.
func (h *ExpenseHandler) DateWise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	incomeOnly := c.Query("q") == constants.IncomeCategory

	totals, err := h.expenseService.DateTotals(c.Request.Context(), userID, incomeOnly)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, "Ok", totals))
}

// Filter narrows the user's expenses by optional date range, amount and
// category query parameters.
func (h *ExpenseHandler) Filter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var filter dto.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest,
			constants.BuildResponse(http.StatusBadRequest, "invalid filter parameters"))
		return
	}

	items, err := h.expenseService.Filtered(c.Request.Context(), userID, filter)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, "Ok", items))
}
