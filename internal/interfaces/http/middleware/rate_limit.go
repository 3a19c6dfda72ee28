package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/config"
	"golang.org/x/time/rate"
)

// RateLimit keeps one token bucket per client IP. A limit of zero disables it.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	perMinute := cfg.Security.RateLimitPerMinute
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := cfg.Security.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	every := rate.Limit(float64(perMinute) / 60)

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(every, burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		limiter := limiterFor(c.ClientIP())

		// Add rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
