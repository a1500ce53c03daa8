package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
)

// GetChattedUsersController lists the caller's conversation partners with
// the latest exchange, newest first.
type GetChattedUsersController struct {
	Chatted *usecase.GetChattedUsersUseCase
}

func NewGetChattedUsersController(chatted *usecase.GetChattedUsersUseCase) *GetChattedUsersController {
	return &GetChattedUsersController{Chatted: chatted}
}

func (h *GetChattedUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)

		previews, err := h.Chatted.Execute(c.Request.Context(), acct.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conversations"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"chats": previews})
	}
}
