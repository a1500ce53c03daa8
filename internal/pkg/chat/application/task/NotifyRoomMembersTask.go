package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	queue "go-parley/internal/infrastructure/queue/port"
	"go-parley/internal/pkg/chat/application/usecase"
)

// TypeNotifyRoomMembers is the queue task type for room notification fan-out.
const TypeNotifyRoomMembers = "chat:notify_room_members"

// NotifyRoomMembersPayload is the JSON body of a fan-out task.
type NotifyRoomMembersPayload struct {
	RoomID     string `json:"room_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
}

// NewNotifyRoomMembersTask builds the queue task for a freshly persisted
// room message.
func NewNotifyRoomMembersTask(p NotifyRoomMembersPayload) (queue.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return queue.Task{}, fmt.Errorf("marshal notify payload: %w", err)
	}
	return queue.Task{Type: TypeNotifyRoomMembers, Payload: body}, nil
}

// NotifyRoomMembersHandler returns the worker handler that materializes
// notifications for the room's other members. Errors propagate so the queue
// retries; the underlying write tolerates duplicates.
func NotifyRoomMembersHandler(uc *usecase.FanOutRoomNotificationsUseCase, log zerolog.Logger) queue.Handler {
	return func(ctx context.Context, t queue.Task) error {
		var p NotifyRoomMembersPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return fmt.Errorf("unmarshal notify payload: %w", err)
		}
		n, err := uc.Execute(ctx, usecase.FanOutRoomNotificationsInput(p))
		if err != nil {
			return err
		}
		log.Debug().
			Str("room_id", p.RoomID).
			Int("notified", n).
			Msg("room notification fan-out complete")
		return nil
	}
}
