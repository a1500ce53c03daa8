package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
)

// GetUnreadCountsController reports unread private-message counts per sender.
type GetUnreadCountsController struct {
	Counts *usecase.GetUnreadCountsUseCase
}

func NewGetUnreadCountsController(counts *usecase.GetUnreadCountsUseCase) *GetUnreadCountsController {
	return &GetUnreadCountsController{Counts: counts}
}

func (h *GetUnreadCountsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)

		counts, err := h.Counts.Execute(c.Request.Context(), acct.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread messages"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"unread": counts})
	}
}
