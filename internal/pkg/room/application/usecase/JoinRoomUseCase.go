package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-parley/internal/pkg/room/application/memberindex"
	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// JoinRoomInput identifies the room and the joining account.
type JoinRoomInput struct {
	RoomID string
	UserID string
}

// JoinRoomUseCase creates a durable membership and mirrors it into the index.
type JoinRoomUseCase struct {
	Repo  repository.RoomRepository
	Index *memberindex.Index
}

func NewJoinRoomUseCase(repo repository.RoomRepository, index *memberindex.Index) *JoinRoomUseCase {
	return &JoinRoomUseCase{Repo: repo, Index: index}
}

func (uc *JoinRoomUseCase) Execute(ctx context.Context, in JoinRoomInput) error {
	if in.RoomID == "" || in.UserID == "" {
		return fmt.Errorf("room_id and user_id are required")
	}

	if _, err := uc.Repo.FindByID(ctx, in.RoomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The storage layer's uniqueness constraint serializes concurrent
	// joins for the same pair; a duplicate surfaces as ErrAlreadyMember.
	if err := uc.Repo.AddMember(ctx, in.RoomID, in.UserID); err != nil {
		if errors.Is(err, room.ErrAlreadyMember) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Index.Join(in.RoomID, in.UserID)
	return nil
}
