package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"
	chat "go-parley/internal/pkg/chat/domain"
)

const defaultRoomPageSize = 100

// GetRoomMessagesController returns a page of a room's history, members only.
type GetRoomMessagesController struct {
	Messages *usecase.GetRoomMessagesUseCase
}

func NewGetRoomMessagesController(messages *usecase.GetRoomMessagesUseCase) *GetRoomMessagesController {
	return &GetRoomMessagesController{Messages: messages}
}

func (h *GetRoomMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if uuid.Validate(roomID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a valid id"})
			return
		}
		acct := auth.CurrentAccount(c)

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRoomPageSize)))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > defaultRoomPageSize {
			limit = defaultRoomPageSize
		}
		if offset < 0 {
			offset = 0
		}

		res, err := h.Messages.Execute(c.Request.Context(), usecase.GetRoomMessagesInput{
			UserID: acct.ID,
			RoomID: roomID,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			if errors.Is(err, chat.ErrNotMember) {
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"messages":  res.Messages,
			"usernames": res.Usernames,
		})
	}
}
