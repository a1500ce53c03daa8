package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// GetRoomMessagesInput identifies the room page being fetched.
type GetRoomMessagesInput struct {
	UserID string
	RoomID string
	Limit  int
	Offset int
}

// RoomHistory is a page of room messages with sender names resolved.
type RoomHistory struct {
	Messages  []chat.Message
	Usernames map[string]string
}

// GetRoomMessagesUseCase returns a page of the room's messages, oldest
// first, for members only. Fetching room history does not mark anything
// read; room acknowledgment is an explicit separate action.
type GetRoomMessagesUseCase struct {
	Messages repository.MessageRepository
	Users    NameResolver
	Index    MembershipChecker
}

func NewGetRoomMessagesUseCase(messages repository.MessageRepository, users NameResolver, index MembershipChecker) *GetRoomMessagesUseCase {
	return &GetRoomMessagesUseCase{Messages: messages, Users: users, Index: index}
}

func (uc *GetRoomMessagesUseCase) Execute(ctx context.Context, in GetRoomMessagesInput) (*RoomHistory, error) {
	if !uc.Index.IsMember(in.RoomID, in.UserID) {
		return nil, chat.ErrNotMember
	}

	msgs, err := uc.Messages.RoomMessages(ctx, in.RoomID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	seen := make(map[string]struct{}, len(msgs))
	senders := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.SenderID]; ok {
			continue
		}
		seen[m.SenderID] = struct{}{}
		senders = append(senders, m.SenderID)
	}

	names := map[string]string{}
	if len(senders) > 0 {
		names, err = uc.Users.Usernames(ctx, senders)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	return &RoomHistory{Messages: msgs, Usernames: names}, nil
}
