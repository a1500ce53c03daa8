package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
)

// GetRoomUnreadCountsController reports unacknowledged room-message counts
// per room the caller belongs to.
type GetRoomUnreadCountsController struct {
	Counts *usecase.GetRoomUnreadCountsUseCase
}

func NewGetRoomUnreadCountsController(counts *usecase.GetRoomUnreadCountsUseCase) *GetRoomUnreadCountsController {
	return &GetRoomUnreadCountsController{Counts: counts}
}

func (h *GetRoomUnreadCountsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)

		counts, err := h.Counts.Execute(c.Request.Context(), acct.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread room messages"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"unread": counts})
	}
}
