package usecase

import (
	"context"
	"errors"
	"fmt"

	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// ErrNoNotificationIDs is returned when a delete request names nothing.
var ErrNoNotificationIDs = errors.New("chat: notification ids are required")

// DeleteNotificationsUseCase removes the given notifications for the user.
// Deletion is the terminal acknowledgment; identifiers owned by someone
// else are silently skipped.
type DeleteNotificationsUseCase struct {
	Notifications repository.NotificationRepository
}

func NewDeleteNotificationsUseCase(notifications repository.NotificationRepository) *DeleteNotificationsUseCase {
	return &DeleteNotificationsUseCase{Notifications: notifications}
}

func (uc *DeleteNotificationsUseCase) Execute(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return ErrNoNotificationIDs
	}
	if err := uc.Notifications.DeleteByIDs(ctx, userID, ids); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
