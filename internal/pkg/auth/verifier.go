package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	cacheport "go-parley/internal/infrastructure/cache/port"
	user "go-parley/internal/pkg/user/domain"
)

// sessionCacheTTL bounds how stale the cached session version may be. The
// cache entry is deleted on every login/logout, so the TTL only matters
// when the delete itself is lost.
const sessionCacheTTL = 30 * time.Second

// AccountSource is the slice of the user repository the verifier needs.
type AccountSource interface {
	FindByID(ctx context.Context, id string) (*user.Account, error)
}

// Verifier validates a bearer token against the current account record.
// The exact same check runs at HTTP-request time and at the realtime
// handshake; both layers call Verify.
type Verifier struct {
	tokens   *TokenManager
	accounts AccountSource
	cache    cacheport.Cache // optional; nil disables caching
}

// NewVerifier constructs a Verifier. cache may be nil.
func NewVerifier(tokens *TokenManager, accounts AccountSource, cache cacheport.Cache) *Verifier {
	return &Verifier{tokens: tokens, accounts: accounts, cache: cache}
}

// Verify decodes the token, loads the referenced account and compares the
// embedded session version against the account's current one. It returns
// ErrNoToken for an absent credential, ErrInvalidToken for a bad or expired
// one, and ErrSessionRevoked on a version mismatch.
func (v *Verifier) Verify(ctx context.Context, token string) (*user.Account, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims, err := v.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if acct, ok := v.fromCache(ctx, claims.UserID); ok {
		if acct.SessionVersion != claims.SessionVersion {
			return nil, ErrSessionRevoked
		}
		return acct, nil
	}

	acct, err := v.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("auth: load account: %w", err)
	}
	if acct.SessionVersion != claims.SessionVersion {
		return nil, ErrSessionRevoked
	}

	v.toCache(ctx, acct)
	return acct, nil
}

// InvalidateSession drops the cached session version for the account. Call
// after every session-version bump so revocation takes effect immediately.
func (v *Verifier) InvalidateSession(ctx context.Context, userID string) {
	if v.cache == nil {
		return
	}
	_, _ = v.cache.Del(ctx, sessionKey(userID))
}

func sessionKey(userID string) string {
	return "session:" + userID
}

// Cache entries hold "version|username" so a hit avoids the account lookup
// entirely. The reconstructed Account carries only the fields the request
// path needs.
func (v *Verifier) fromCache(ctx context.Context, userID string) (*user.Account, bool) {
	if v.cache == nil {
		return nil, false
	}
	raw, err := v.cache.Get(ctx, sessionKey(userID))
	if err != nil {
		return nil, false
	}
	version, username, ok := strings.Cut(raw, "|")
	if !ok {
		return nil, false
	}
	sv, err := strconv.Atoi(version)
	if err != nil {
		return nil, false
	}
	return &user.Account{ID: userID, Username: username, SessionVersion: sv}, true
}

func (v *Verifier) toCache(ctx context.Context, acct *user.Account) {
	if v.cache == nil {
		return
	}
	val := strconv.Itoa(acct.SessionVersion) + "|" + acct.Username
	_ = v.cache.Set(ctx, sessionKey(acct.ID), val, sessionCacheTTL)
}
