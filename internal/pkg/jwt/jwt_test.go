package jwt

import (
	"context"
	"testing"

	"github.com/ems-labs/ems-backend-go/internal/domain/auth"
	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	employeeID := 7
	tokenString, expiresAt, err := svc.GenerateAccessToken(42, "dana", &employeeID, user.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dana", claims["username"])
	assert.Equal(t, "Admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestValidateRefreshToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateAccessToken(42, "dana", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateRefreshToken_Revoked(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)

	svc.RevokeToken(tokenString)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	assert.True(t, svc.IsTokenRevoked(tokenString))
	assert.False(t, svc.IsTokenRevoked("some-other-token"))
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	other := NewJWTService("a-different-secret-key", "1h", "24h")

	tokenString, _, err := other.GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestClaimsFromContext(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	employeeID := 7
	tokenString, _, err := svc.GenerateAccessToken(42, "dana", &employeeID, user.RoleEmployee)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	userID, err := UserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	gotEmployeeID, err := EmployeeIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, gotEmployeeID)

	role, err := RoleFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, role)
}

func TestEmployeeIDFromContext_Unlinked(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateAccessToken(42, "dana", nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = EmployeeIDFromContext(ctx)
	assert.ErrorIs(t, err, user.ErrNoLinkedEmployee)
}
