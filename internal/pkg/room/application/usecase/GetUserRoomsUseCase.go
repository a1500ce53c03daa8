package usecase

import (
	"context"
	"fmt"

	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// GetUserRoomsInput wraps the account identifier.
type GetUserRoomsInput struct {
	UserID string
}

// GetUserRoomsUseCase lists the rooms the account belongs to, newest first.
type GetUserRoomsUseCase struct {
	Repo repository.RoomRepository
}

func NewGetUserRoomsUseCase(repo repository.RoomRepository) *GetUserRoomsUseCase {
	return &GetUserRoomsUseCase{Repo: repo}
}

func (uc *GetUserRoomsUseCase) Execute(ctx context.Context, in GetUserRoomsInput) ([]room.Summary, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	rooms, err := uc.Repo.RoomsForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rooms, nil
}
