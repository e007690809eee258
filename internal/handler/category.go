package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			constants.BuildResponse(http.StatusBadRequest, bindingErrorMessage(err)))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK,
		constants.BuildDataResponse(http.StatusOK, "Category created", category))
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(http.StatusOK, "Ok", categories))
}
