package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// SendRoomMessageInput carries a message addressed to a room.
type SendRoomMessageInput struct {
	SenderID string
	RoomID   string
	Content  string
}

// SendRoomMessageUseCase persists a room message after a membership check.
// Non-members cannot post. Notification fan-out to the other members runs
// as a background task enqueued by the caller once persistence succeeds.
type SendRoomMessageUseCase struct {
	Messages repository.MessageRepository
	Index    MembershipChecker
}

func NewSendRoomMessageUseCase(messages repository.MessageRepository, index MembershipChecker) *SendRoomMessageUseCase {
	return &SendRoomMessageUseCase{Messages: messages, Index: index}
}

func (uc *SendRoomMessageUseCase) Execute(ctx context.Context, in SendRoomMessageInput) (*chat.Message, error) {
	if !uc.Index.IsMember(in.RoomID, in.SenderID) {
		return nil, chat.ErrNotMember
	}

	msg, err := chat.NewRoomMessage(in.SenderID, in.RoomID, in.Content)
	if err != nil {
		return nil, err
	}

	id, err := uc.Messages.Save(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id
	return msg, nil
}
