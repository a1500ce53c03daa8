package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
)

// ListNotificationsController returns the caller's pending notifications.
type ListNotificationsController struct {
	List *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(list *usecase.ListNotificationsUseCase) *ListNotificationsController {
	return &ListNotificationsController{List: list}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)
		limit, _ := strconv.Atoi(c.Query("limit"))

		ns, err := h.List.Execute(c.Request.Context(), acct.ID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"notifications": ns})
	}
}
