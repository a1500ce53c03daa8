package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	user "go-parley/internal/pkg/user/domain"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

const accountKey = "auth.account"

// TokenFromRequest extracts the bearer credential from the token cookie or
// the Authorization header, in that order. Returns "" when absent.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Middleware authenticates every request through the verifier and stores
// the account in the gin context. The status mapping mirrors the realtime
// handshake: missing or revoked credentials are 401, a token that fails
// validation is 403.
func Middleware(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, err := verifier.Verify(c.Request.Context(), TokenFromRequest(c.Request))
		if err != nil {
			switch {
			case errors.Is(err, ErrNoToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			case errors.Is(err, ErrSessionRevoked):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token expired or invalid"})
			case errors.Is(err, ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authentication failed"})
			}
			return
		}
		c.Set(accountKey, acct)
		c.Next()
	}
}

// CurrentAccount returns the authenticated account stored by Middleware.
func CurrentAccount(c *gin.Context) *user.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	acct, _ := v.(*user.Account)
	return acct
}
