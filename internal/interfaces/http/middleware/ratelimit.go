package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// RateLimiter enforces a fixed-window request limit per client, counting in
// the injected key-value store so the window survives restarts when backed by
// Redis and is shared across replicas.
type RateLimiter struct {
	store  shared.KeyValueStore
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(store shared.KeyValueStore, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow counts a request against key and reports whether it is within the
// limit, along with the remaining allowance. Store failures fail open: a
// broken counter backend should not take down the API.
func (rl *RateLimiter) Allow(c *gin.Context, key string) (bool, int) {
	count, err := rl.store.Increment(c.Request.Context(), "ratelimit:"+key, rl.window)
	if err != nil {
		if rl.logger != nil {
			rl.logger.Warn("Rate limit counter unavailable", zap.Error(err))
		}
		return true, rl.limit
	}

	remaining := rl.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= rl.limit, remaining
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey returns a rate limiting middleware with a custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(c, keyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeRateLimited),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, "Too many requests. Please try again later.", requestID),
			)
			return
		}

		c.Next()
	}
}
