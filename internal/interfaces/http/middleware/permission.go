package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Logger *zap.Logger
}

// RequirePermission creates middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission creates middleware that requires any of the specified
// permissions. The user must hold at least one, directly or via a wildcard
// grant.
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permissions...)
}

// RequireAnyPermissionWithConfig creates permission middleware with custom config
func RequireAnyPermissionWithConfig(cfg PermissionConfig, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "No authentication claims found")
			return
		}

		if !auth.HasAnyPermission(claims.Permissions, permissions...) {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Permission denied",
					zap.String("user_id", claims.UserID),
					zap.Strings("required_any", permissions),
				)
			}
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeForbidden),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient permissions", requestID),
			)
			return
		}

		c.Next()
	}
}

// RequireRole creates middleware that requires a specific role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "No authentication claims found")
			return
		}

		if !claims.HasRole(role) {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeForbidden),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role", requestID),
			)
			return
		}

		c.Next()
	}
}
