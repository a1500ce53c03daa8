package usecase

import (
	"context"
	"fmt"
	"time"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// MarkRoomReadInput identifies the room being acknowledged by the reader.
type MarkRoomReadInput struct {
	ReaderID string
	RoomID   string
}

// MarkRoomReadUseCase records the reader's receipt on every room message
// from others and flips messages whose receipt set now covers every current
// member except the sender. The threshold is recomputed from the durable
// member count on every call, so membership churn between calls changes
// which messages qualify. Returns the messages flipped by this call.
type MarkRoomReadUseCase struct {
	Messages repository.MessageRepository
	Rooms    MemberSource
	Index    MembershipChecker
}

func NewMarkRoomReadUseCase(messages repository.MessageRepository, rooms MemberSource, index MembershipChecker) *MarkRoomReadUseCase {
	return &MarkRoomReadUseCase{Messages: messages, Rooms: rooms, Index: index}
}

func (uc *MarkRoomReadUseCase) Execute(ctx context.Context, in MarkRoomReadInput) ([]repository.RoomReadState, error) {
	if !uc.Index.IsMember(in.RoomID, in.ReaderID) {
		return nil, chat.ErrNotMember
	}

	if err := uc.Messages.AddRoomReadReceipts(ctx, in.RoomID, in.ReaderID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	memberCount, err := uc.Rooms.MemberCount(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	threshold := memberCount - 1

	states, err := uc.Messages.RoomReadStates(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var flipped []repository.RoomReadState
	for _, s := range states {
		if s.ReadCount < threshold {
			continue
		}
		// The conditional update lets only one caller win per message,
		// so concurrent acknowledgments never double-report a flip.
		won, err := uc.Messages.MarkRoomMessageRead(ctx, s.MessageID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if won {
			flipped = append(flipped, s)
		}
	}
	return flipped, nil
}
