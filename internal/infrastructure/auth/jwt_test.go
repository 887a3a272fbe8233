package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-signing-32ch",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "retailpos-test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(GenerateTokenInput{
		UserID:      userID,
		Username:    "cashier1",
		Roles:       []string{"sales_representative"},
		Permissions: []string{"invoice.create", "receipt.*"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "cashier1", claims.Username)
	assert.True(t, claims.HasRole("sales_representative"))
	assert.False(t, claims.HasRole("admin"))

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	token, _, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-32char",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "retailpos-test",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiration = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		granted  []string
		required string
		want     bool
	}{
		{"exact match", []string{"invoice.create"}, "invoice.create", true},
		{"exact miss", []string{"invoice.create"}, "invoice.update", false},
		{"wildcard covers child", []string{"invoice.*"}, "invoice.create", true},
		{"wildcard covers nested child", []string{"invoice.*"}, "invoice.edits.create", true},
		{"wildcard does not cross domains", []string{"invoice.*"}, "receipt.create", false},
		{"super admin covers everything", []string{"*"}, "refund.update", true},
		{"empty set denies", nil, "invoice.create", false},
		{"bare star is not a prefix wildcard", []string{"invoice*"}, "invoice.create", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.granted, tt.required))
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	granted := []string{"receipt.*"}
	assert.True(t, HasAnyPermission(granted, "invoice.create", "receipt.create"))
	assert.False(t, HasAnyPermission(granted, "invoice.create", "refund.create"))
}
