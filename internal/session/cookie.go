// Package session moves credentials between HTTP exchanges and the client as
// scoped cookies with fixed security attributes.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
)

// CookieManager writes and reads credential cookies. HttpOnly and Secure are
// always set; SameSite is None in development so cross-site local frontends
// can send credentials, Lax otherwise.
type CookieManager struct {
	sameSite http.SameSite
}

func NewCookieManager(cfg *config.Config) *CookieManager {
	sameSite := http.SameSiteLaxMode
	if cfg.IsDevelopment() {
		sameSite = http.SameSiteNoneMode
	}
	return &CookieManager{sameSite: sameSite}
}

// Set attaches a credential cookie scoped to path.
func (m *CookieManager) Set(c *gin.Context, name, value string, maxAge time.Duration, path string) {
	c.SetSameSite(m.sameSite)
	c.SetCookie(name, value, int(maxAge.Seconds()), path, "", true, true)
}

// Get reads a cookie value; the second return reports presence.
func (m *CookieManager) Get(c *gin.Context, name string) (string, bool) {
	value, err := c.Cookie(name)
	if err != nil {
		return "", false
	}
	return value, true
}

// Clear instructs the client to delete the cookie at path.
func (m *CookieManager) Clear(c *gin.Context, name, path string) {
	c.SetSameSite(m.sameSite)
	c.SetCookie(name, "", -1, path, "", true, true)
}

// SetAccessToken writes the access cookie on the root path.
func (m *CookieManager) SetAccessToken(c *gin.Context, value string, ttl time.Duration) {
	m.Set(c, constants.AccessTokenCookie, value, ttl, constants.AccessTokenPath)
}

// SetRefreshToken writes the refresh cookie scoped to the refresh endpoint.
func (m *CookieManager) SetRefreshToken(c *gin.Context, value string, ttl time.Duration) {
	m.Set(c, constants.RefreshTokenCookie, value, ttl, constants.RefreshTokenPath)
}

func (m *CookieManager) ClearAccessToken(c *gin.Context) {
	m.Clear(c, constants.AccessTokenCookie, constants.AccessTokenPath)
}

func (m *CookieManager) ClearRefreshToken(c *gin.Context) {
	m.Clear(c, constants.RefreshTokenCookie, constants.RefreshTokenPath)
}
