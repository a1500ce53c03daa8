package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// LogoutInput identifies the account logging out.
type LogoutInput struct {
	UserID string
}

// LogoutUseCase bumps the session version so every outstanding token for
// the account, on every device, is revoked.
type LogoutUseCase struct {
	Repo     repository.UserRepository
	Sessions *auth.Verifier
}

func NewLogoutUseCase(repo repository.UserRepository, sessions *auth.Verifier) *LogoutUseCase {
	return &LogoutUseCase{Repo: repo, Sessions: sessions}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, in LogoutInput) error {
	if in.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if _, err := uc.Repo.BumpSessionVersion(ctx, in.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	uc.Sessions.InvalidateSession(ctx, in.UserID)
	return nil
}
