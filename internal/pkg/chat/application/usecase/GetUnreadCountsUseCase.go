package usecase

import (
	"context"
	"fmt"

	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// GetUnreadCountsUseCase reports unread private messages addressed to the
// user, grouped by sender. Senders with nothing unread are absent.
type GetUnreadCountsUseCase struct {
	Messages repository.MessageRepository
}

func NewGetUnreadCountsUseCase(messages repository.MessageRepository) *GetUnreadCountsUseCase {
	return &GetUnreadCountsUseCase{Messages: messages}
}

func (uc *GetUnreadCountsUseCase) Execute(ctx context.Context, userID string) (map[string]int, error) {
	counts, err := uc.Messages.UnreadCountsBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return counts, nil
}
