package usecase

import (
	"context"
	"fmt"

	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// SearchRoomsInput wraps the name substring to match.
type SearchRoomsInput struct {
	Query string
}

// SearchRoomsUseCase matches rooms by case-insensitive name substring.
type SearchRoomsUseCase struct {
	Repo repository.RoomRepository
}

func NewSearchRoomsUseCase(repo repository.RoomRepository) *SearchRoomsUseCase {
	return &SearchRoomsUseCase{Repo: repo}
}

func (uc *SearchRoomsUseCase) Execute(ctx context.Context, in SearchRoomsInput) ([]room.Summary, error) {
	if in.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	rooms, err := uc.Repo.SearchByName(ctx, in.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rooms, nil
}
