package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	queue "go-parley/internal/infrastructure/queue/port"
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	chatrepo "go-parley/internal/pkg/chat/persistence/repository/port"
	chathttp "go-parley/internal/pkg/chat/presentation/http"
	"go-parley/internal/pkg/room/application/memberindex"
	roomrepo "go-parley/internal/pkg/room/persistence/repository/port"
	roomhttp "go-parley/internal/pkg/room/presentation/http"
	userrepo "go-parley/internal/pkg/user/persistence/repository/port"
	userhttp "go-parley/internal/pkg/user/presentation/http"
)

// Deps carries everything the v1 API needs, built once in main.
type Deps struct {
	Users         userrepo.UserRepository
	Rooms         roomrepo.RoomRepository
	Messages      chatrepo.MessageRepository
	Notifications chatrepo.NotificationRepository

	Index    *memberindex.Index
	Hub      *realtime.Hub
	Verifier *auth.Verifier
	Tokens   *auth.TokenManager
	Hasher   *auth.PasswordHasher
	Queue    queue.Client
	Log      zerolog.Logger
}

// RegisterRoutes mounts all version 1 API routes under /api/v1. The public
// group carries signup, login and the websocket handshake; everything else
// sits behind the auth middleware.
func RegisterRoutes(r *gin.Engine, d Deps) {
	public := r.Group("/api/v1")
	authed := r.Group("/api/v1", auth.Middleware(d.Verifier))

	userhttp.RegisterRoutes(public, authed, d.Users, d.Hasher, d.Tokens, d.Verifier)
	roomhttp.RegisterRoutes(authed, d.Rooms, d.Index)
	chathttp.RegisterRoutes(public, authed, d.Messages, d.Notifications, d.Users, d.Rooms, d.Index, d.Hub, d.Verifier, d.Queue, d.Log)
}
