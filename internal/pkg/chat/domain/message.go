package chat

import (
	"errors"
	"strings"
	"time"
)

// MessageType discriminates the conversation target of a message.
type MessageType string

const (
	MessageTypePrivate MessageType = "private"
	MessageTypeRoom    MessageType = "room"
)

var (
	ErrEmptyContent     = errors.New("chat: message content is empty")
	ErrMissingRecipient = errors.New("chat: private message requires a recipient")
	ErrMissingRoom      = errors.New("chat: room message requires a room")
	ErrNotMember        = errors.New("chat: sender is not a member of the room")
)

// Message is an immutable log entry in a conversation. Exactly one of
// RecipientID (private) or RoomID (room) is set, consistent with Type.
// Read-state is the only mutable part: the IsRead flag for private messages,
// and for room messages the aggregate IsRead flag plus the receipt set kept
// in its own table.
type Message struct {
	ID          string      `db:"id"`
	SenderID    string      `db:"sender_id"`
	RecipientID string      `db:"recipient_id"`
	RoomID      string      `db:"room_id"`
	Content     string      `db:"content"`
	Type        MessageType `db:"type"`
	IsRead      bool        `db:"is_read"`
	CreatedAt   time.Time   `db:"created_at"`
}

// ReadReceipt records that a room member has acknowledged a room message.
// Primary key: (MessageID, UserID). A receipt is never written for the
// message's own sender.
type ReadReceipt struct {
	MessageID string    `db:"message_id"`
	UserID    string    `db:"user_id"`
	ReadAt    time.Time `db:"read_at"`
}

// NewPrivateMessage validates and shapes a direct message between two users.
func NewPrivateMessage(senderID, recipientID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if recipientID == "" {
		return nil, ErrMissingRecipient
	}
	return &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Type:        MessageTypePrivate,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NewRoomMessage validates and shapes a message addressed to a room. The
// receipt set starts empty; the aggregate IsRead flips true exactly once,
// when every current member except the sender has acknowledged it.
func NewRoomMessage(senderID, roomID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if roomID == "" {
		return nil, ErrMissingRoom
	}
	return &Message{
		SenderID:  senderID,
		RoomID:    roomID,
		Content:   content,
		Type:      MessageTypeRoom,
		CreatedAt: time.Now().UTC(),
	}, nil
}
