package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID, "alice@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(userID, "alice@example.com")
	require.NoError(t, err)

	// A refresh token must not pass access validation, and vice versa.
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := svc.GenerateAccessToken(userID, "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService()
	other := NewService("different-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}
