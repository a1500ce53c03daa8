package http

import (
	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/room/application/memberindex"
	"go-parley/internal/pkg/room/application/usecase"
	repository "go-parley/internal/pkg/room/persistence/repository/port"
	"go-parley/internal/pkg/room/presentation/controller"
)

// RegisterRoutes registers room lifecycle endpoints under the authenticated
// group. Mutating endpoints keep the in-memory membership index in sync
// through their use cases.
func RegisterRoutes(authed *gin.RouterGroup, repo repository.RoomRepository, index *memberindex.Index) {
	createCtl := controller.NewCreateRoomController(usecase.NewCreateRoomUseCase(repo, index))
	joinCtl := controller.NewJoinRoomController(usecase.NewJoinRoomUseCase(repo, index))
	leaveCtl := controller.NewLeaveRoomController(usecase.NewLeaveRoomUseCase(repo, index))
	deleteCtl := controller.NewDeleteRoomController(usecase.NewDeleteRoomUseCase(repo, index))
	detailsCtl := controller.NewGetRoomDetailsController(usecase.NewGetRoomDetailsUseCase(repo))
	listCtl := controller.NewGetUserRoomsController(usecase.NewGetUserRoomsUseCase(repo))
	searchCtl := controller.NewSearchRoomsController(usecase.NewSearchRoomsUseCase(repo))

	authed.POST("/rooms", createCtl.Handle())
	authed.GET("/rooms", listCtl.Handle())
	authed.GET("/rooms/search", searchCtl.Handle())
	authed.GET("/rooms/:roomId", detailsCtl.Handle())
	authed.DELETE("/rooms/:roomId", deleteCtl.Handle())
	authed.POST("/rooms/:roomId/join", joinCtl.Handle())
	authed.POST("/rooms/:roomId/leave", leaveCtl.Handle())
}
