package constants

import "time"

// Cookie names shared with the frontend client.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Cookie scoping. The refresh cookie is restricted to the refresh endpoint so
// it is never sent on unrelated requests.
const (
	AccessTokenPath  = "/"
	RefreshTokenPath = "/auth/refresh"
)

// Auth route paths. These are also the gate's public allow-list: refresh and
// logout authenticate with the refresh cookie, not the access cookie, so the
// gate must let them through.
const (
	RegisterPath = "/auth/register"
	LoginPath    = "/auth/login"
	RefreshPath  = "/auth/refresh"
	LogoutPath   = "/auth/logout"
	HealthPath   = "/health"
)

// IncomeCategory is the reserved category name separating income entries from
// spending in listings and aggregations.
const IncomeCategory = "income"

const ShutdownTimeout = 10 * time.Second
