package usecase

import (
	"context"
	"fmt"

	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// MarkPrivateReadInput identifies the conversation being acknowledged:
// ReaderID has read everything PeerID sent them.
type MarkPrivateReadInput struct {
	ReaderID string
	PeerID   string
}

// MarkPrivateReadUseCase flips every unread private message from the peer
// to the reader in one bulk update and returns the flipped identifiers so
// the caller can notify the original sender. Already-read messages are
// untouched; repeating the call returns nothing.
type MarkPrivateReadUseCase struct {
	Messages repository.MessageRepository
}

func NewMarkPrivateReadUseCase(messages repository.MessageRepository) *MarkPrivateReadUseCase {
	return &MarkPrivateReadUseCase{Messages: messages}
}

func (uc *MarkPrivateReadUseCase) Execute(ctx context.Context, in MarkPrivateReadInput) ([]string, error) {
	ids, err := uc.Messages.MarkPrivateRead(ctx, in.PeerID, in.ReaderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ids, nil
}
