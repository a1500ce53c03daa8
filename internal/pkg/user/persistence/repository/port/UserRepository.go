package repository

import (
	"context"

	user "go-parley/internal/pkg/user/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts the account and returns its generated identifier.
	// Duplicate username/email surface as user.ErrUsernameTaken /
	// user.ErrEmailTaken.
	Create(ctx context.Context, a user.Account) (string, error)

	// FindByID returns user.ErrNotFound when no such account exists.
	FindByID(ctx context.Context, id string) (*user.Account, error)
	FindByEmail(ctx context.Context, email string) (*user.Account, error)

	// SearchByUsername matches usernames by case-insensitive substring,
	// excluding the given account.
	SearchByUsername(ctx context.Context, q, excludeID string) ([]user.Account, error)

	// BumpSessionVersion atomically increments the account's session
	// version and returns the new value. Every previously issued token
	// becomes revoked.
	BumpSessionVersion(ctx context.Context, id string) (int, error)

	// Usernames resolves display names for a set of account identifiers.
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}
