package controller

import (
	"encoding/json"
	"time"
)

// Frame type identifiers exchanged over the websocket.
const (
	frameSendPrivate     = "send-private"
	frameSendRoom        = "send-room"
	frameMarkReadPrivate = "mark-read-private"
	frameMarkReadRoom    = "mark-read-room"
	frameJoinChannel     = "join-room-channel"
	frameLeaveChannel    = "leave-room-channel"

	frameConnected         = "connected"
	framePrivateMessage    = "private-message"
	frameRoomMessage       = "room-message"
	frameMessageStatus     = "message-status"
	frameRoomMessageStatus = "room-message-status"
	frameSessionExpired    = "session-expired"
	frameError             = "error"
)

// inboundFrame is the union of all client frames, dispatched on Type.
type inboundFrame struct {
	Type       string `json:"type"`
	ToUserID   string `json:"toUserId"`
	WithUserID string `json:"withUserId"`
	RoomID     string `json:"roomId"`
	Text       string `json:"text"`
}

type connectedEvent struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type privateMessageEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type roomMessageEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// statusEvent reports a read transition; Type distinguishes the private and
// room variants, RoomID is set only for the latter.
type statusEvent struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
	RoomID    string `json:"roomId,omitempty"`
	IsRead    bool   `json:"isRead"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Error codes carried by error frames.
const (
	codeBadFrame   = "bad-frame"
	codeValidation = "validation"
	codeForbidden  = "forbidden"
	codeInternal   = "internal"
)

func encodeFrame(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return payload
}
