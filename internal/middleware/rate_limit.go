package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// RateLimiter tracks request timestamps per client IP within a sliding
// window. It guards the credential endpoints against brute forcing.
type RateLimiter struct {
	requests   map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:   make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	for ip, stamps := range rl.requests {
		var valid []time.Time
		for _, t := range stamps {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.requests[ip] = valid
		} else {
			delete(rl.requests, ip)
		}
	}
}

// Allow records a request for ip and reports whether it stays within the
// window.
func (rl *RateLimiter) Allow(ip string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	stamps := rl.requests[ip]
	if len(stamps) >= rl.maxRequest {
		return false, 0
	}

	rl.requests[ip] = append(stamps, now)
	return true, rl.maxRequest - len(stamps) - 1
}

func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		allowed, remaining := limiter.Allow(ip, now)
		if !allowed {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.Int("max_requests", maxRequest),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				constants.BuildResponse(http.StatusTooManyRequests, "rate limit exceeded"))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}
