package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware-tests",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "retailpos-test",
	})
}

func jwtTestRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddleware(svc))
	router.GET("/api/v1/invoice", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	router := jwtTestRouter(svc)

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
			UserID:      userID,
			Username:    "cashier",
			Permissions: []string{"invoice.read"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("expired token maps to token expired", func(t *testing.T) {
		expiredSvc := auth.NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-for-middleware-tests",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "retailpos-test",
		})
		token, _, err := expiredSvc.GenerateToken(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "cashier",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	svc := newTestJWTService()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), JWTAuthMiddleware(svc))
		router.POST("/api/v1/invoice", RequirePermission("invoice.create"), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return router
	}

	request := func(t *testing.T, router *gin.Engine, permissions []string) *httptest.ResponseRecorder {
		t.Helper()
		token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
			UserID:      uuid.New(),
			Username:    "cashier",
			Permissions: permissions,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("exact permission passes", func(t *testing.T) {
		w := request(t, newRouter(), []string{"invoice.create"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("wildcard grant passes", func(t *testing.T) {
		w := request(t, newRouter(), []string{"invoice.*"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing permission is forbidden", func(t *testing.T) {
		w := request(t, newRouter(), []string{"receipt.read"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("no claims is unauthorized", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.POST("/p", RequirePermission("invoice.create"), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/p", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
