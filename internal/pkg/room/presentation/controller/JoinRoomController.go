package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/room/application/usecase"
	room "go-parley/internal/pkg/room/domain"
)

// JoinRoomController handles membership creation for an existing room.
type JoinRoomController struct {
	Join *usecase.JoinRoomUseCase
}

func NewJoinRoomController(join *usecase.JoinRoomUseCase) *JoinRoomController {
	return &JoinRoomController{Join: join}
}

func (h *JoinRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if uuid.Validate(roomID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a valid id"})
			return
		}
		acct := auth.CurrentAccount(c)

		err := h.Join.Execute(c.Request.Context(), usecase.JoinRoomInput{
			RoomID: roomID,
			UserID: acct.ID,
		})
		if err != nil {
			switch {
			case errors.Is(err, room.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, room.ErrAlreadyMember):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "joined"})
	}
}
