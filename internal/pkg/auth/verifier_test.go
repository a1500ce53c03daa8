package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "go-parley/internal/infrastructure/cache/port"
	user "go-parley/internal/pkg/user/domain"
)

type fakeAccounts struct {
	accounts map[string]*user.Account
	calls    int
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*user.Account, error) {
	f.calls++
	acct, ok := f.accounts[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *acct
	return &cp, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

func testVerifier(t *testing.T, cache cacheport.Cache) (*Verifier, *TokenManager, *fakeAccounts) {
	t.Helper()
	tokens := NewTokenManager(TokenConfig{Secret: "test-secret", TTL: time.Hour})
	accounts := &fakeAccounts{accounts: map[string]*user.Account{
		"u1": {ID: "u1", Username: "alice", SessionVersion: 2},
	}}
	return NewVerifier(tokens, accounts, cache), tokens, accounts
}

func TestVerifyNoToken(t *testing.T) {
	v, _, _ := testVerifier(t, nil)
	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	v, _, _ := testVerifier(t, nil)
	_, err := v.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyHappyPath(t *testing.T) {
	v, tokens, _ := testVerifier(t, nil)
	token, err := tokens.Generate("u1", 2)
	require.NoError(t, err)

	acct, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.ID)
	assert.Equal(t, "alice", acct.Username)
}

func TestVerifyRevokedSession(t *testing.T) {
	v, tokens, _ := testVerifier(t, nil)

	// Token issued at version 1; account has since moved to version 2.
	token, err := tokens.Generate("u1", 1)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestVerifyUnknownAccount(t *testing.T) {
	v, tokens, _ := testVerifier(t, nil)
	token, err := tokens.Generate("ghost", 1)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyUsesCacheOnSecondCall(t *testing.T) {
	cache := newFakeCache()
	v, tokens, accounts := testVerifier(t, cache)
	token, err := tokens.Generate("u1", 2)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, accounts.calls)

	acct, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, accounts.calls, "second verify should hit the cache")
	assert.Equal(t, "alice", acct.Username)
}

func TestInvalidateSessionForcesReload(t *testing.T) {
	cache := newFakeCache()
	v, tokens, accounts := testVerifier(t, cache)
	token, err := tokens.Generate("u1", 2)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.NoError(t, err)

	// Bump the version behind the verifier's back, then invalidate.
	accounts.accounts["u1"].SessionVersion = 3
	v.InvalidateSession(context.Background(), "u1")

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}
