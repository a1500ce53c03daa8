package usecase

import (
	"context"
	"fmt"

	user "go-parley/internal/pkg/user/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// SearchUsersInput carries the query and the caller to exclude from results.
type SearchUsersInput struct {
	Query    string
	CallerID string
}

// SearchUsersUseCase matches accounts by case-insensitive username
// substring, excluding the caller.
type SearchUsersUseCase struct {
	Repo repository.UserRepository
}

func NewSearchUsersUseCase(repo repository.UserRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{Repo: repo}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, in SearchUsersInput) ([]user.Account, error) {
	if in.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	accounts, err := uc.Repo.SearchByUsername(ctx, in.Query, in.CallerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return accounts, nil
}
