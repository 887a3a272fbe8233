package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the request header carrying a client-chosen
// deduplication key.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store  shared.KeyValueStore
	TTL    time.Duration
	Logger *zap.Logger
}

// IdempotencyKey rejects repeated mutating requests that carry the same
// Idempotency-Key header within the TTL. Requests without the header pass
// through; the key is claimed with a set-if-absent so only the first request
// in the window is processed. Store failures fail open, the persistence
// layer's unique constraints remain the authority.
func IdempotencyKey(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		claimed, err := cfg.Store.SetIfAbsent(c.Request.Context(), "idempotency:"+key, c.FullPath(), ttl)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}
		if !claimed {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeConflict),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeConflict,
					"Request with this idempotency key was already accepted", requestID),
			)
			return
		}

		c.Next()
	}
}
