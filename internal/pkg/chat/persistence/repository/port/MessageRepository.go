package repository

import (
	"context"
	"time"

	chat "go-parley/internal/pkg/chat/domain"
)

// RoomReadState pairs a not-yet-fully-read room message with the size of
// its acknowledgment set.
type RoomReadState struct {
	MessageID string
	SenderID  string
	ReadCount int
}

// MessageRepository defines persistence operations for messages and their
// read state.
type MessageRepository interface {
	// Save appends the message and returns its generated identifier.
	Save(ctx context.Context, m chat.Message) (string, error)

	// MarkPrivateRead flips IsRead on every unread private message from
	// senderID to recipientID in one bulk update and returns the flipped
	// message identifiers.
	MarkPrivateRead(ctx context.Context, senderID, recipientID string) ([]string, error)

	// AddRoomReadReceipts records userID's acknowledgment of every room
	// message in roomID authored by someone else. The add is an atomic
	// add-to-set: re-acknowledging is a no-op.
	AddRoomReadReceipts(ctx context.Context, roomID, userID string, at time.Time) error

	// RoomReadStates lists the room's messages whose aggregate IsRead is
	// still false, with their current receipt counts.
	RoomReadStates(ctx context.Context, roomID string) ([]RoomReadState, error)

	// MarkRoomMessageRead flips the aggregate IsRead flag and reports
	// whether this call performed the transition. The flip is conditional
	// at the storage layer, so concurrent callers cannot both win and the
	// flag never reverts.
	MarkRoomMessageRead(ctx context.Context, messageID string) (bool, error)

	// PrivateHistory returns every private message between the two users,
	// oldest first.
	PrivateHistory(ctx context.Context, userA, userB string) ([]chat.Message, error)

	// RoomMessages returns the room's messages, oldest first.
	RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]chat.Message, error)

	// UnreadCountsBySender counts unread private messages addressed to the
	// recipient, grouped by sender.
	UnreadCountsBySender(ctx context.Context, recipientID string) (map[string]int, error)

	// UnreadRoomCounts counts, per room the user belongs to, the room
	// messages from others the user has not yet acknowledged.
	UnreadRoomCounts(ctx context.Context, userID string) (map[string]int, error)

	// ConversationPreviews lists the user's private-message partners with
	// the most recent exchange, newest first.
	ConversationPreviews(ctx context.Context, userID string) ([]chat.ConversationPreview, error)
}

// NotificationRepository defines persistence for the notification side
// channel. Notifications have no read transition: bulk deletion by the
// recipient is the terminal acknowledgment.
type NotificationRepository interface {
	Save(ctx context.Context, n chat.Notification) (string, error)
	SaveBatch(ctx context.Context, ns []chat.Notification) error

	// ListUnread returns the recipient's notifications, newest first.
	ListUnread(ctx context.Context, userID string, limit int) ([]chat.Notification, error)

	// DeleteByIDs removes the given notifications, restricted to rows
	// owned by userID.
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
}
