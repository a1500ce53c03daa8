package usecase

import (
	"context"
	"errors"
	"fmt"

	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// GetRoomDetailsInput wraps the room identifier.
type GetRoomDetailsInput struct {
	RoomID string
}

// RoomDetails is a room with its full member list.
type RoomDetails struct {
	room.Summary
	Members []room.Member `json:"members"`
}

// GetRoomDetailsUseCase fetches a room, its member count and member list.
type GetRoomDetailsUseCase struct {
	Repo repository.RoomRepository
}

func NewGetRoomDetailsUseCase(repo repository.RoomRepository) *GetRoomDetailsUseCase {
	return &GetRoomDetailsUseCase{Repo: repo}
}

func (uc *GetRoomDetailsUseCase) Execute(ctx context.Context, in GetRoomDetailsInput) (*RoomDetails, error) {
	if in.RoomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}

	rm, err := uc.Repo.FindByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	members, err := uc.Repo.Members(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &RoomDetails{
		Summary: room.Summary{Room: *rm, MemberCount: len(members)},
		Members: members,
	}, nil
}
