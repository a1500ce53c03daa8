package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/room/application/usecase"
	room "go-parley/internal/pkg/room/domain"
)

// CreateRoomController handles room creation only (one controller per endpoint)
type CreateRoomController struct {
	Create *usecase.CreateRoomUseCase
}

func NewCreateRoomController(create *usecase.CreateRoomUseCase) *CreateRoomController {
	return &CreateRoomController{Create: create}
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CreateRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		acct := auth.CurrentAccount(c)

		r, err := h.Create.Execute(c.Request.Context(), usecase.CreateRoomInput{
			Name:      req.Name,
			CreatorID: acct.ID,
		})
		if err != nil {
			if errors.Is(err, room.ErrEmptyName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        r.ID,
			"name":      r.Name,
			"createdBy": r.CreatedBy,
			"createdAt": r.CreatedAt,
		})
	}
}
