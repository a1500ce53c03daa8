package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// GetChatHistoryInput identifies the private conversation being opened.
type GetChatHistoryInput struct {
	UserID string
	PeerID string
}

// ChatHistory is a private conversation with display names resolved and
// the identifiers of messages this fetch transitioned to read.
type ChatHistory struct {
	Messages  []chat.Message
	Usernames map[string]string
	ReadIDs   []string
}

// GetChatHistoryUseCase returns the full private history between two users,
// oldest first. Opening the conversation marks the peer's messages read as
// a side effect; the flipped identifiers are returned so the caller can
// push read receipts to the peer's live connection.
type GetChatHistoryUseCase struct {
	Messages repository.MessageRepository
	Users    NameResolver
}

func NewGetChatHistoryUseCase(messages repository.MessageRepository, users NameResolver) *GetChatHistoryUseCase {
	return &GetChatHistoryUseCase{Messages: messages, Users: users}
}

func (uc *GetChatHistoryUseCase) Execute(ctx context.Context, in GetChatHistoryInput) (*ChatHistory, error) {
	if in.PeerID == "" {
		return nil, chat.ErrMissingRecipient
	}

	readIDs, err := uc.Messages.MarkPrivateRead(ctx, in.PeerID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msgs, err := uc.Messages.PrivateHistory(ctx, in.UserID, in.PeerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	names, err := uc.Users.Usernames(ctx, []string{in.UserID, in.PeerID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &ChatHistory{Messages: msgs, Usernames: names, ReadIDs: readIDs}, nil
}
