package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// GetChattedUsersUseCase lists the user's private-message partners with the
// most recent exchange, newest first.
type GetChattedUsersUseCase struct {
	Messages repository.MessageRepository
}

func NewGetChattedUsersUseCase(messages repository.MessageRepository) *GetChattedUsersUseCase {
	return &GetChattedUsersUseCase{Messages: messages}
}

func (uc *GetChattedUsersUseCase) Execute(ctx context.Context, userID string) ([]chat.ConversationPreview, error) {
	previews, err := uc.Messages.ConversationPreviews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return previews, nil
}
