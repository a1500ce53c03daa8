package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// SignupInput carries the registration fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// ErrMissingFields is returned when any registration field is absent.
var ErrMissingFields = errors.New("user: username, email and password are required")

// SignupUseCase registers a new account with a hashed credential.
type SignupUseCase struct {
	Repo   repository.UserRepository
	Hasher *auth.PasswordHasher
}

func NewSignupUseCase(repo repository.UserRepository, hasher *auth.PasswordHasher) *SignupUseCase {
	return &SignupUseCase{Repo: repo, Hasher: hasher}
}

func (uc *SignupUseCase) Execute(ctx context.Context, in SignupInput) (*user.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := uc.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	acct := user.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Verified:     true,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := uc.Repo.Create(ctx, acct)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) || errors.Is(err, user.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	acct.ID = id
	return &acct, nil
}
