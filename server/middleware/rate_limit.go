// Package middleware provides HTTP middleware shared across the API.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter tracks one token bucket per client address. Review
// submissions fan out to the LLM, so unbounded request rates get expensive
// fast.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter

	rate  rate.Limit
	burst int
}

// NewRateLimiter creates a rate limiter allowing r requests per second with
// the given burst per client.
func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		rate:   r,
		burst:  burst,
	}
}

// DefaultRateLimiter allows 10 requests per second with a burst of 20.
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(rate.Every(time.Second/10), 20)
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow reports whether a request under the given key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware rejects requests exceeding the per-client budget with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
