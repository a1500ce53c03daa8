package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
	chat "go-parley/internal/pkg/chat/domain"
)

// GetChatHistoryController returns the private conversation with another
// user. Opening the conversation marks the peer's messages read; if the
// peer is online they receive a message-status event per flipped message,
// which is how "delivered" becomes "seen" on their client.
type GetChatHistoryController struct {
	History *usecase.GetChatHistoryUseCase
	Hub     *realtime.Hub
}

func NewGetChatHistoryController(history *usecase.GetChatHistoryUseCase, hub *realtime.Hub) *GetChatHistoryController {
	return &GetChatHistoryController{History: history, Hub: hub}
}

func (h *GetChatHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		peerID := c.Param("userId")
		if uuid.Validate(peerID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a valid id"})
			return
		}
		acct := auth.CurrentAccount(c)

		res, err := h.History.Execute(c.Request.Context(), usecase.GetChatHistoryInput{
			UserID: acct.ID,
			PeerID: peerID,
		})
		if err != nil {
			if errors.Is(err, chat.ErrMissingRecipient) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
			return
		}

		for _, id := range res.ReadIDs {
			h.Hub.NotifyUser(peerID, encodeFrame(statusEvent{
				Type:      frameMessageStatus,
				MessageID: id,
				IsRead:    true,
			}))
		}

		c.JSON(http.StatusOK, gin.H{
			"messages":  res.Messages,
			"usernames": res.Usernames,
		})
	}
}
