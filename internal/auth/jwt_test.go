package auth

import (
	"creator-yield/internal/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(ttl time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{Secret: "test-secret", ExpiresIn: ttl})
}

func TestRoundTrip(t *testing.T) {
	s := newService(time.Hour)
	token, err := s.GenerateToken(42)
	require.NoError(t, err)

	userID, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestRejectsNonPositiveUser(t *testing.T) {
	_, err := newService(time.Hour).GenerateToken(0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestExpiredToken(t *testing.T) {
	s := newService(time.Minute)
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := s.GenerateToken(1)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	token, err := newService(time.Hour).GenerateToken(1)
	require.NoError(t, err)

	other := NewTokenService(config.JWTConfig{Secret: "other", ExpiresIn: time.Hour})
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingUserClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService(time.Hour).ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
