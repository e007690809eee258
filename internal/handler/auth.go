package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/service"
	"github.com/budgetly/expense-tracker/internal/session"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
	cookies     *session.CookieManager
	authCfg     *config.AuthConfig
}

func NewAuthHandler(authService *service.AuthService, cookies *session.CookieManager, authCfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		authCfg:     authCfg,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			constants.BuildResponse(http.StatusBadRequest, bindingErrorMessage(err)))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK,
		constants.BuildDataResponse(http.StatusOK, "Registered successfully", user))
}

// Login authenticates the user and delivers both credential cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			constants.BuildResponse(http.StatusBadRequest, bindingErrorMessage(err)))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	h.cookies.SetAccessToken(c, result.AccessToken, h.authCfg.AccessTTL)
	h.cookies.SetRefreshToken(c, result.RefreshToken, h.authCfg.RefreshTTL)

	c.JSON(http.StatusOK,
		constants.BuildDataResponse(http.StatusOK, "Login successfully", result.User))
}

// Refresh mints a new access cookie from the refresh cookie. An invalid or
// revoked refresh token also clears the refresh cookie so the client stops
// presenting it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, ok := h.cookies.Get(c, constants.RefreshTokenCookie)
	if !ok || refreshToken == "" {
		c.JSON(http.StatusUnauthorized,
			constants.BuildResponse(http.StatusUnauthorized, apperrors.ErrTokenMissing.Message))
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.cookies.ClearRefreshToken(c)
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	h.cookies.SetAccessToken(c, accessToken, h.authCfg.AccessTTL)

	c.JSON(http.StatusOK,
		constants.BuildResponse(http.StatusOK, "Access token refreshed"))
}

// Logout revokes the stored session best-effort and always clears both
// cookies with a success response.
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, ok := h.cookies.Get(c, constants.RefreshTokenCookie); ok && refreshToken != "" {
		// Revocation failures are discarded on purpose: logout must
		// succeed for the client no matter the session state.
		if err := h.authService.ClearSession(c.Request.Context(), refreshToken); err != nil {
			logger.GetLogger().Debug("Session revocation skipped during logout",
				zap.Error(err),
			)
		}
	}

	h.cookies.ClearRefreshToken(c)
	h.cookies.ClearAccessToken(c)

	c.JSON(http.StatusOK,
		constants.BuildResponse(http.StatusOK, "Logout successfully"))
}
