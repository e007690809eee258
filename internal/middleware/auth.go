package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/budgetly/expense-tracker/internal/constants"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/token"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// accessTokenDecoder is the gate's view of the credential machinery.
type accessTokenDecoder interface {
	DecodeAccess(tokenString string) (*token.Claims, error)
}

// AuthGate runs once per inbound request before route dispatch. Preflight
// requests and allow-listed public paths pass through untouched; everything
// else needs a valid access cookie. The gate only verifies, it never issues
// or refreshes credentials.
type AuthGate struct {
	decoder     accessTokenDecoder
	publicPaths map[string]struct{}
}

func NewAuthGate(decoder accessTokenDecoder) *AuthGate {
	public := map[string]struct{}{
		constants.RegisterPath: {},
		constants.LoginPath:    {},
		constants.RefreshPath:  {},
		constants.LogoutPath:   {},
		constants.HealthPath:   {},
	}
	return &AuthGate{decoder: decoder, publicPaths: public}
}

func (g *AuthGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if _, ok := g.publicPaths[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		tokenString, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || tokenString == "" {
			reject(c, apperrors.ErrTokenMissing)
			return
		}

		claims, err := g.decoder.DecodeAccess(tokenString)
		if err != nil {
			logger.GetLogger().Debug("Access token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			reject(c, apperrors.ErrTokenInvalid)
			return
		}

		// A verified signature over nothing identifies nobody.
		if claims.Subject == "" {
			reject(c, apperrors.ErrTokenEmpty)
			return
		}

		c.Set(constants.GinKeyClaims, claims)
		c.Next()
	}
}

func reject(c *gin.Context, domainErr *apperrors.DomainError) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		constants.BuildResponse(http.StatusUnauthorized, domainErr.Message))
}

// ClaimsFromContext returns the claim set the gate attached for this request.
func ClaimsFromContext(c *gin.Context) (*token.Claims, bool) {
	value, exists := c.Get(constants.GinKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*token.Claims)
	return claims, ok
}
