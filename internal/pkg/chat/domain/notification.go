package chat

import (
	"fmt"
	"time"
)

// Notification is a lightweight "you have activity" record kept separately
// from message delivery. It has no mark-read transition: deletion by the
// recipient is the terminal acknowledgment.
type Notification struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	FromUserID string    `db:"from_user_id"`
	RoomID     string    `db:"room_id"` // empty for private-message notifications
	Text       string    `db:"text"`
	Read       bool      `db:"read"`
	CreatedAt  time.Time `db:"created_at"`
}

const previewLimit = 50

// NewPrivateNotification builds the activity record for a direct message,
// embedding a truncated preview of the content.
func NewPrivateNotification(toUserID, fromUserID, senderName, content string) Notification {
	preview := content
	if runes := []rune(preview); len(runes) > previewLimit {
		preview = string(runes[:previewLimit]) + "..."
	}
	return Notification{
		UserID:     toUserID,
		FromUserID: fromUserID,
		Text:       fmt.Sprintf("New message from %s: %s", senderName, preview),
		CreatedAt:  time.Now().UTC(),
	}
}

// NewRoomNotification builds the activity record for a room message.
func NewRoomNotification(toUserID, fromUserID, roomID, senderName string) Notification {
	return Notification{
		UserID:     toUserID,
		FromUserID: fromUserID,
		RoomID:     roomID,
		Text:       fmt.Sprintf("New message from %s in room", senderName),
		CreatedAt:  time.Now().UTC(),
	}
}
