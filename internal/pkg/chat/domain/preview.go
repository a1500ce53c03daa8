package chat

import "time"

// ConversationPreview summarizes a private-message thread for the caller's
// conversation list: the other party plus the most recent exchange.
type ConversationPreview struct {
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	LastIsMine    bool      `json:"isLastMessageMine"`
}
