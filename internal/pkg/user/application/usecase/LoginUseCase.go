package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the issued session.
type LoginResult struct {
	Account *user.Account
	Token   string
}

// LoginUseCase authenticates the credentials, bumps the account's session
// version (revoking every previously issued token) and signs a new token
// bound to the fresh version.
type LoginUseCase struct {
	Repo     repository.UserRepository
	Hasher   *auth.PasswordHasher
	Tokens   *auth.TokenManager
	Sessions *auth.Verifier
}

func NewLoginUseCase(repo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, sessions *auth.Verifier) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Hasher: hasher, Tokens: tokens, Sessions: sessions}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	acct, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrBadLogin
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !acct.Verified {
		return nil, user.ErrNotVerified
	}
	if !uc.Hasher.Verify(in.Password, acct.PasswordHash) {
		return nil, user.ErrBadLogin
	}

	version, err := uc.Repo.BumpSessionVersion(ctx, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	acct.SessionVersion = version
	uc.Sessions.InvalidateSession(ctx, acct.ID)

	token, err := uc.Tokens.Generate(acct.ID, version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &LoginResult{Account: acct, Token: token}, nil
}
