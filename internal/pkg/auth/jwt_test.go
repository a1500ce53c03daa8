package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "test-secret", TTL: time.Hour, Issuer: "parley-test"})

	token, err := m.Generate("user-1", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, 3, claims.SessionVersion)
	assert.Equal(t, "parley-test", claims.Issuer)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "test-secret", TTL: -time.Minute})

	token, err := m.Generate("user-1", 1)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewTokenManager(TokenConfig{Secret: "secret-a", TTL: time.Hour})
	parser := NewTokenManager(TokenConfig{Secret: "secret-b", TTL: time.Hour})

	token, err := issuer.Generate("user-1", 1)
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "test-secret", TTL: time.Hour})

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTL(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "test-secret"})
	assert.Equal(t, time.Hour, m.TTL())
}
