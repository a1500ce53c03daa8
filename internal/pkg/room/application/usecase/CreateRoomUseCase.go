package usecase

import (
	"context"
	"fmt"

	"go-parley/internal/pkg/room/application/memberindex"
	room "go-parley/internal/pkg/room/domain"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
)

// CreateRoomInput carries the data to open a new room.
type CreateRoomInput struct {
	Name      string
	CreatorID string
}

// CreateRoomUseCase persists a room together with the creator's membership
// and mirrors the membership into the index.
type CreateRoomUseCase struct {
	Repo  repository.RoomRepository
	Index *memberindex.Index
}

func NewCreateRoomUseCase(repo repository.RoomRepository, index *memberindex.Index) *CreateRoomUseCase {
	return &CreateRoomUseCase{Repo: repo, Index: index}
}

func (uc *CreateRoomUseCase) Execute(ctx context.Context, in CreateRoomInput) (*room.Room, error) {
	rm, err := room.New(in.Name, in.CreatorID)
	if err != nil {
		return nil, err
	}

	created, err := uc.Repo.CreateWithCreator(ctx, *rm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Mirror only after the durable write succeeded.
	uc.Index.Join(created.ID, created.CreatedBy)
	return created, nil
}
