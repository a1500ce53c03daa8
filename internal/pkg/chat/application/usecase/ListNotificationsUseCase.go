package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

const defaultNotificationLimit = 50

// ListNotificationsUseCase returns the user's pending notifications,
// newest first.
type ListNotificationsUseCase struct {
	Notifications repository.NotificationRepository
}

func NewListNotificationsUseCase(notifications repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Notifications: notifications}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID string, limit int) ([]chat.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	ns, err := uc.Notifications.ListUnread(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ns, nil
}
