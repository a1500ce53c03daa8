package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user: account not found")
	ErrUsernameTaken = errors.New("user: username already in use")
	ErrEmailTaken    = errors.New("user: email already in use")
	ErrBadLogin      = errors.New("user: invalid email or password")
	ErrNotVerified   = errors.New("user: email not verified")
)

// Account is a registered user. SessionVersion is a monotonic counter bumped
// on every login and logout; tokens embedding an older value are revoked.
type Account struct {
	ID             string    `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"`
	SessionVersion int       `db:"session_version"`
	Verified       bool      `db:"verified"`
	CreatedAt      time.Time `db:"created_at"`
}
