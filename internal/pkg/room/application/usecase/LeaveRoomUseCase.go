package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-parley/internal/pkg/room/application/memberindex"
	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// LeaveRoomInput identifies the room and the leaving account.
type LeaveRoomInput struct {
	RoomID string
	UserID string
}

// LeaveRoomUseCase removes a durable membership. The creator can never
// leave; the room must be deleted instead.
type LeaveRoomUseCase struct {
	Repo  repository.RoomRepository
	Index *memberindex.Index
}

func NewLeaveRoomUseCase(repo repository.RoomRepository, index *memberindex.Index) *LeaveRoomUseCase {
	return &LeaveRoomUseCase{Repo: repo, Index: index}
}

func (uc *LeaveRoomUseCase) Execute(ctx context.Context, in LeaveRoomInput) error {
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
	if rm.CreatedBy == in.UserID {
		return room.ErrCreatorCannotLeave
	}

	if err := uc.Repo.RemoveMember(ctx, in.RoomID, in.UserID); err != nil {
		if errors.Is(err, room.ErrNotMember) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Index.Leave(in.RoomID, in.UserID)
	return nil
}
