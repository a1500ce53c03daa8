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

// LeaveRoomController handles membership removal. The creator is rejected:
// the only exit for a creator is deleting the room.
type LeaveRoomController struct {
	Leave *usecase.LeaveRoomUseCase
}

func NewLeaveRoomController(leave *usecase.LeaveRoomUseCase) *LeaveRoomController {
	return &LeaveRoomController{Leave: leave}
}

func (h *LeaveRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if uuid.Validate(roomID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a valid id"})
			return
		}
		acct := auth.CurrentAccount(c)

		err := h.Leave.Execute(c.Request.Context(), usecase.LeaveRoomInput{
			RoomID: roomID,
			UserID: acct.ID,
		})
		if err != nil {
			switch {
			case errors.Is(err, room.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, room.ErrCreatorCannotLeave):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			case errors.Is(err, room.ErrNotMember):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave room"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "left"})
	}
}
