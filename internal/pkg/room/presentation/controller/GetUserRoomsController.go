package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/room/application/usecase"
)

// GetUserRoomsController lists the caller's rooms with member counts.
type GetUserRoomsController struct {
	Rooms *usecase.GetUserRoomsUseCase
}

func NewGetUserRoomsController(rooms *usecase.GetUserRoomsUseCase) *GetUserRoomsController {
	return &GetUserRoomsController{Rooms: rooms}
}

func (h *GetUserRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)

		summaries, err := h.Rooms.Execute(c.Request.Context(), usecase.GetUserRoomsInput{UserID: acct.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"rooms": summaries})
	}
}
