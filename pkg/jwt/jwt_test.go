package jwt

import (
	"testing"
	"time"

	"healthapp-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "unit-test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	s := newService(15 * time.Minute)

	userID := uuid.New()
	token, tokenID, err := s.GenerateAccessToken(userID, "user@example.com", []string{"USER", "ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	s := newService(15 * time.Minute)

	token, _, err := s.GenerateRefreshToken(uuid.New(), "user@example.com", nil)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateExpiredToken(t *testing.T) {
	s := newService(-time.Minute)

	token, _, err := s.GenerateAccessToken(uuid.New(), "user@example.com", nil)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenFromOtherSecret(t *testing.T) {
	s := newService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:       "different-secret",
		AccessExpiry: 15 * time.Minute,
	})

	token, _, err := other.GenerateAccessToken(uuid.New(), "user@example.com", nil)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	s := newService(15 * time.Minute)

	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}
