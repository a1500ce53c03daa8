package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// FanOutRoomNotificationsInput describes the room message being fanned out.
type FanOutRoomNotificationsInput struct {
	RoomID     string
	SenderID   string
	SenderName string
}

// FanOutRoomNotificationsUseCase writes one notification per room member
// except the sender. It runs from a background worker, so membership is
// read from durable storage rather than the in-memory index. The task may
// be retried; duplicate notifications on retry are tolerated.
type FanOutRoomNotificationsUseCase struct {
	Notifications repository.NotificationRepository
	Rooms         MemberSource
}

func NewFanOutRoomNotificationsUseCase(notifications repository.NotificationRepository, rooms MemberSource) *FanOutRoomNotificationsUseCase {
	return &FanOutRoomNotificationsUseCase{Notifications: notifications, Rooms: rooms}
}

func (uc *FanOutRoomNotificationsUseCase) Execute(ctx context.Context, in FanOutRoomNotificationsInput) (int, error) {
	members, err := uc.Rooms.Members(ctx, in.RoomID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ns := make([]chat.Notification, 0, len(members))
	for _, m := range members {
		if m.UserID == in.SenderID {
			continue
		}
		ns = append(ns, chat.NewRoomNotification(m.UserID, in.SenderID, in.RoomID, in.SenderName))
	}
	if len(ns) == 0 {
		return 0, nil
	}

	if err := uc.Notifications.SaveBatch(ctx, ns); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return len(ns), nil
}
