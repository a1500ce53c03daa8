package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	queue "go-parley/internal/infrastructure/queue/port"
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"
	"go-parley/internal/pkg/chat/application/usecase"
	chat "go-parley/internal/pkg/chat/domain"
	"go-parley/internal/pkg/room/application/memberindex"
)

const (
	maxFrameSize = 1 << 20
	pongWait     = 60 * time.Second
)

// ChatSocketController owns the realtime endpoint: handshake, presence and
// channel registration, and the per-connection read loop that dispatches
// inbound frames. Each connection walks Connecting -> Authenticating ->
// Joined -> Disconnected; an authentication failure emits session-expired
// and closes, with no retry from the server side.
type ChatSocketController struct {
	Verifier *auth.Verifier
	Hub      *realtime.Hub
	Index    *memberindex.Index
	Queue    queue.Client
	Log      zerolog.Logger

	SendPrivate *usecase.SendPrivateMessageUseCase
	SendRoom    *usecase.SendRoomMessageUseCase
	MarkPrivate *usecase.MarkPrivateReadUseCase
	MarkRoom    *usecase.MarkRoomReadUseCase

	upgrader websocket.Upgrader
}

func NewChatSocketController(
	verifier *auth.Verifier,
	hub *realtime.Hub,
	index *memberindex.Index,
	queueClient queue.Client,
	log zerolog.Logger,
	sendPrivate *usecase.SendPrivateMessageUseCase,
	sendRoom *usecase.SendRoomMessageUseCase,
	markPrivate *usecase.MarkPrivateReadUseCase,
	markRoom *usecase.MarkRoomReadUseCase,
) *ChatSocketController {
	return &ChatSocketController{
		Verifier:    verifier,
		Hub:         hub,
		Index:       index,
		Queue:       queueClient,
		Log:         log,
		SendPrivate: sendPrivate,
		SendRoom:    sendRoom,
		MarkPrivate: markPrivate,
		MarkRoom:    markRoom,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handle returns the gin handler that upgrades the request and runs the
// connection to completion.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return ctl.serve
}

func (ctl *ChatSocketController) serve(c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ctl.Log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	acct, err := ctl.Verifier.Verify(c.Request.Context(), auth.TokenFromRequest(c.Request))
	if err != nil {
		_ = ws.WriteMessage(websocket.TextMessage, encodeFrame(gin.H{"type": frameSessionExpired}))
		_ = ws.Close()
		return
	}

	conn := realtime.NewConnection(acct.ID, acct.Username, ws)
	ctl.Hub.Attach(conn)
	defer func() {
		ctl.Hub.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "")
	}()

	// Join one broadcast channel per durable membership so room fan-out
	// needs no per-member lookup.
	for _, roomID := range ctl.Index.RoomsOf(acct.ID) {
		ctl.Hub.JoinRoom(roomID, conn)
	}

	_ = conn.Send(encodeFrame(connectedEvent{Type: frameConnected, UserID: acct.ID}))
	ctl.Log.Info().Str("user_id", acct.ID).Str("session_id", conn.ID).Msg("websocket connected")

	ws.SetReadLimit(maxFrameSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			ctl.Log.Debug().Err(err).Str("user_id", acct.ID).Msg("websocket closed")
			return
		}
		ctl.dispatch(c.Request.Context(), conn, data)
	}
}

func (ctl *ChatSocketController) dispatch(ctx context.Context, conn *realtime.Connection, data []byte) {
	var f inboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		ctl.pushError(conn, codeBadFrame, "malformed frame")
		return
	}

	switch f.Type {
	case frameSendPrivate:
		ctl.handleSendPrivate(ctx, conn, f)
	case frameSendRoom:
		ctl.handleSendRoom(ctx, conn, f)
	case frameMarkReadPrivate:
		ctl.handleMarkReadPrivate(ctx, conn, f)
	case frameMarkReadRoom:
		ctl.handleMarkReadRoom(ctx, conn, f)
	case frameJoinChannel:
		ctl.handleJoinChannel(conn, f)
	case frameLeaveChannel:
		ctl.Hub.LeaveRoom(f.RoomID, conn)
	default:
		ctl.pushError(conn, codeBadFrame, "unknown frame type")
	}
}

func (ctl *ChatSocketController) handleSendPrivate(ctx context.Context, conn *realtime.Connection, f inboundFrame) {
	msg, err := ctl.SendPrivate.Execute(ctx, usecase.SendPrivateMessageInput{
		SenderID:    conn.UserID,
		SenderName:  conn.Username,
		RecipientID: f.ToUserID,
		Content:     f.Text,
	})
	if err != nil {
		ctl.pushUseCaseError(conn, err)
		return
	}

	// Offline recipients pick the message up from history later.
	delivered := ctl.Hub.NotifyUser(msg.RecipientID, encodeFrame(privateMessageEvent{
		Type:       framePrivateMessage,
		ID:         msg.ID,
		FromUserID: msg.SenderID,
		SenderName: conn.Username,
		Text:       msg.Content,
		CreatedAt:  msg.CreatedAt,
	}))
	ctl.Log.Debug().
		Str("message_id", msg.ID).
		Str("to", msg.RecipientID).
		Bool("delivered", delivered).
		Msg("private message sent")
}

func (ctl *ChatSocketController) handleSendRoom(ctx context.Context, conn *realtime.Connection, f inboundFrame) {
	msg, err := ctl.SendRoom.Execute(ctx, usecase.SendRoomMessageInput{
		SenderID: conn.UserID,
		RoomID:   f.RoomID,
		Content:  f.Text,
	})
	if err != nil {
		ctl.pushUseCaseError(conn, err)
		return
	}

	ctl.Hub.Broadcast(msg.RoomID, encodeFrame(roomMessageEvent{
		Type:       frameRoomMessage,
		ID:         msg.ID,
		RoomID:     msg.RoomID,
		Sender:     msg.SenderID,
		SenderName: conn.Username,
		Text:       msg.Content,
		CreatedAt:  msg.CreatedAt,
	}), "")

	ctl.enqueueFanOut(ctx, msg.RoomID, conn)
}

func (ctl *ChatSocketController) handleMarkReadPrivate(ctx context.Context, conn *realtime.Connection, f inboundFrame) {
	ids, err := ctl.MarkPrivate.Execute(ctx, usecase.MarkPrivateReadInput{
		ReaderID: conn.UserID,
		PeerID:   f.WithUserID,
	})
	if err != nil {
		ctl.pushUseCaseError(conn, err)
		return
	}

	// The original sender learns "seen" only if online right now.
	for _, id := range ids {
		ctl.Hub.NotifyUser(f.WithUserID, encodeFrame(statusEvent{
			Type:      frameMessageStatus,
			MessageID: id,
			IsRead:    true,
		}))
	}
}

func (ctl *ChatSocketController) handleMarkReadRoom(ctx context.Context, conn *realtime.Connection, f inboundFrame) {
	flipped, err := ctl.MarkRoom.Execute(ctx, usecase.MarkRoomReadInput{
		ReaderID: conn.UserID,
		RoomID:   f.RoomID,
	})
	if err != nil {
		ctl.pushUseCaseError(conn, err)
		return
	}

	for _, s := range flipped {
		ctl.Hub.Broadcast(f.RoomID, encodeFrame(statusEvent{
			Type:      frameRoomMessageStatus,
			MessageID: s.MessageID,
			RoomID:    f.RoomID,
			IsRead:    true,
		}), "")
	}
}

func (ctl *ChatSocketController) handleJoinChannel(conn *realtime.Connection, f inboundFrame) {
	if !ctl.Index.IsMember(f.RoomID, conn.UserID) {
		ctl.pushError(conn, codeForbidden, "not a member of the room")
		return
	}
	ctl.Hub.JoinRoom(f.RoomID, conn)
}

func (ctl *ChatSocketController) enqueueFanOut(ctx context.Context, roomID string, conn *realtime.Connection) {
	t, err := task.NewNotifyRoomMembersTask(task.NotifyRoomMembersPayload{
		RoomID:     roomID,
		SenderID:   conn.UserID,
		SenderName: conn.Username,
	})
	if err != nil {
		ctl.Log.Error().Err(err).Msg("build fan-out task")
		return
	}
	if _, err := ctl.Queue.Enqueue(ctx, t, queue.EnqueueOption{Queue: "chat", MaxRetry: 5}); err != nil {
		ctl.Log.Error().Err(err).Str("room_id", roomID).Msg("enqueue fan-out task")
	}
}

// pushUseCaseError maps a use case failure to an error frame. The connection
// stays open in every case.
func (ctl *ChatSocketController) pushUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case usecase.IsValidationError(err):
		ctl.pushError(conn, codeValidation, err.Error())
	case errors.Is(err, chat.ErrNotMember):
		ctl.pushError(conn, codeForbidden, err.Error())
	default:
		ctl.Log.Error().Err(err).Msg("realtime handler failed")
		ctl.pushError(conn, codeInternal, "internal error")
	}
}

func (ctl *ChatSocketController) pushError(conn *realtime.Connection, code, msg string) {
	_ = conn.Send(encodeFrame(errorEvent{Type: frameError, Code: code, Error: msg}))
}
