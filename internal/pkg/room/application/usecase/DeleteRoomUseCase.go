package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-parley/internal/pkg/room/application/memberindex"
	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// DeleteRoomInput identifies the room and the acting account.
type DeleteRoomInput struct {
	RoomID string
	UserID string
}

// DeleteRoomUseCase deletes a room and everything scoped to it: the
// memberships, the room's messages with their read receipts, and the
// room-scoped notifications. Only the creator may delete.
type DeleteRoomUseCase struct {
	Repo  repository.RoomRepository
	Index *memberindex.Index
}

func NewDeleteRoomUseCase(repo repository.RoomRepository, index *memberindex.Index) *DeleteRoomUseCase {
	return &DeleteRoomUseCase{Repo: repo, Index: index}
}

func (uc *DeleteRoomUseCase) Execute(ctx context.Context, in DeleteRoomInput) error {
	if in.RoomID == "" || in.UserID == "" {
		return fmt.Errorf("room_id and user_id are required")
	}

	rm, err := uc.Repo.FindByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if rm.CreatedBy != in.UserID {
		return room.ErrNotCreator
	}

	if err := uc.Repo.DeleteCascade(ctx, in.RoomID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Index.DropRoom(in.RoomID)
	return nil
}
