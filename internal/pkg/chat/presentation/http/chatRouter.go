package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	queue "go-parley/internal/infrastructure/queue/port"
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
	"go-parley/internal/pkg/chat/presentation/controller"
	"go-parley/internal/pkg/room/application/memberindex"
	roomrepo "go-parley/internal/pkg/room/persistence/repository/port"
	userrepo "go-parley/internal/pkg/user/persistence/repository/port"
)

// RegisterRoutes registers messaging, notification and realtime endpoints.
// The websocket endpoint sits on the public group: its handshake runs the
// same verifier as the HTTP middleware but must answer failures with a
// session-expired frame after the upgrade, not a plain 401.
func RegisterRoutes(
	public, authed *gin.RouterGroup,
	messages repository.MessageRepository,
	notifications repository.NotificationRepository,
	users userrepo.UserRepository,
	rooms roomrepo.RoomRepository,
	index *memberindex.Index,
	hub *realtime.Hub,
	verifier *auth.Verifier,
	queueClient queue.Client,
	log zerolog.Logger,
) {
	historyCtl := controller.NewGetChatHistoryController(usecase.NewGetChatHistoryUseCase(messages, users), hub)
	chattedCtl := controller.NewGetChattedUsersController(usecase.NewGetChattedUsersUseCase(messages))
	unreadCtl := controller.NewGetUnreadCountsController(usecase.NewGetUnreadCountsUseCase(messages))
	roomMsgsCtl := controller.NewGetRoomMessagesController(usecase.NewGetRoomMessagesUseCase(messages, users, index))
	roomUnreadCtl := controller.NewGetRoomUnreadCountsController(usecase.NewGetRoomUnreadCountsUseCase(messages))
	listNotifCtl := controller.NewListNotificationsController(usecase.NewListNotificationsUseCase(notifications))
	delNotifCtl := controller.NewDeleteNotificationsController(usecase.NewDeleteNotificationsUseCase(notifications))

	socketCtl := controller.NewChatSocketController(
		verifier, hub, index, queueClient, log,
		usecase.NewSendPrivateMessageUseCase(messages, notifications),
		usecase.NewSendRoomMessageUseCase(messages, index),
		usecase.NewMarkPrivateReadUseCase(messages),
		usecase.NewMarkRoomReadUseCase(messages, rooms, index),
	)

	authed.GET("/chats", chattedCtl.Handle())
	authed.GET("/chats/unread-counts", unreadCtl.Handle())
	authed.GET("/chats/:userId/messages", historyCtl.Handle())
	authed.GET("/notifications", listNotifCtl.Handle())
	authed.DELETE("/notifications", delNotifCtl.Handle())
	authed.GET("/rooms/unread-counts", roomUnreadCtl.Handle())
	authed.GET("/rooms/:roomId/messages", roomMsgsCtl.Handle())

	public.GET("/ws", socketCtl.Handle())
}
