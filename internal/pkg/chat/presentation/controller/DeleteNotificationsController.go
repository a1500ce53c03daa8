package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
)

// DeleteNotificationsController removes the listed notifications for the
// caller. Deleting is the terminal acknowledgment of a notification.
type DeleteNotificationsController struct {
	Delete *usecase.DeleteNotificationsUseCase
}

func NewDeleteNotificationsController(del *usecase.DeleteNotificationsUseCase) *DeleteNotificationsController {
	return &DeleteNotificationsController{Delete: del}
}

type deleteNotificationsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *DeleteNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deleteNotificationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, id := range req.IDs {
			if uuid.Validate(id) != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be valid notification ids"})
				return
			}
		}
		acct := auth.CurrentAccount(c)

		if err := h.Delete.Execute(c.Request.Context(), acct.ID, req.IDs); err != nil {
			if errors.Is(err, usecase.ErrNoNotificationIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
