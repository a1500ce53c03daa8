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

// DeleteRoomController handles creator-only room deletion.
type DeleteRoomController struct {
	Delete *usecase.DeleteRoomUseCase
}

func NewDeleteRoomController(del *usecase.DeleteRoomUseCase) *DeleteRoomController {
	return &DeleteRoomController{Delete: del}
}

func (h *DeleteRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if uuid.Validate(roomID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a valid id"})
			return
		}
		acct := auth.CurrentAccount(c)

		err := h.Delete.Execute(c.Request.Context(), usecase.DeleteRoomInput{
			RoomID: roomID,
			UserID: acct.ID,
		})
		if err != nil {
			switch {
			case errors.Is(err, room.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, room.ErrNotCreator):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
