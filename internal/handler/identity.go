package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/internal/constants"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/middleware"
)

// currentUserID resolves the authenticated subject attached by the gate. A
// missing or malformed identity aborts with 401; handlers behind the gate
// should never see that in practice.
func currentUserID(c *gin.Context) (uint, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			constants.BuildResponse(http.StatusUnauthorized, apperrors.ErrTokenMissing.Message))
		return 0, false
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			constants.BuildResponse(http.StatusUnauthorized, apperrors.ErrTokenInvalid.Message))
		return 0, false
	}
	return uint(id), true
}
