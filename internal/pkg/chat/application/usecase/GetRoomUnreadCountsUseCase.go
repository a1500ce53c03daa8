package usecase

import (
	"context"
	"fmt"

	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// GetRoomUnreadCountsUseCase reports, per room the user belongs to, how
// many room messages from others the user has not yet acknowledged.
type GetRoomUnreadCountsUseCase struct {
	Messages repository.MessageRepository
}

func NewGetRoomUnreadCountsUseCase(messages repository.MessageRepository) *GetRoomUnreadCountsUseCase {
	return &GetRoomUnreadCountsUseCase{Messages: messages}
}

func (uc *GetRoomUnreadCountsUseCase) Execute(ctx context.Context, userID string) (map[string]int, error) {
	counts, err := uc.Messages.UnreadRoomCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return counts, nil
}
