package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is malformed, badly signed
	// or expired.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrNoToken is returned when no credential was presented at all.
	ErrNoToken = errors.New("auth: authorization token required")
	// ErrSessionRevoked is returned when the token's session version no
	// longer matches the account's current one (logout, or login elsewhere).
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// SessionClaims are the custom claims carried by every issued token. The
// session version is compared against the account record on every request;
// a mismatch means the token was issued before the most recent login or
// logout and is therefore revoked.
type SessionClaims struct {
	UserID         string `json:"uid"`
	SessionVersion int    `json:"sv"`
	jwt.RegisteredClaims
}

// TokenConfig holds token-signing configuration.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenManager issues and validates HS256 session tokens.
type TokenManager struct {
	cfg TokenConfig
}

// NewTokenManager creates a TokenManager with the given configuration.
func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.TTL == 0 {
		cfg.TTL = time.Hour
	}
	return &TokenManager{cfg: cfg}
}

// Generate signs a token binding the user to their current session version.
func (m *TokenManager) Generate(userID string, sessionVersion int) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:         userID,
		SessionVersion: sessionVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Parse validates the signature and expiry and returns the claims.
func (m *TokenManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.cfg.TTL
}
