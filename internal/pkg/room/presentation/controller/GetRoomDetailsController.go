package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-parley/internal/pkg/room/application/usecase"
	room "go-parley/internal/pkg/room/domain"
)

// GetRoomDetailsController returns a room with its member list.
type GetRoomDetailsController struct {
	Details *usecase.GetRoomDetailsUseCase
}

func NewGetRoomDetailsController(details *usecase.GetRoomDetailsUseCase) *GetRoomDetailsController {
	return &GetRoomDetailsController{Details: details}
}

func (h *GetRoomDetailsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if uuid.Validate(roomID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a valid id"})
			return
		}

		details, err := h.Details.Execute(c.Request.Context(), usecase.GetRoomDetailsInput{RoomID: roomID})
		if err != nil {
			if errors.Is(err, room.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch room"})
			return
		}

		c.JSON(http.StatusOK, details)
	}
}
