package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/room/application/usecase"
)

// SearchRoomsController handles room name substring search.
type SearchRoomsController struct {
	Search *usecase.SearchRoomsUseCase
}

func NewSearchRoomsController(search *usecase.SearchRoomsUseCase) *SearchRoomsController {
	return &SearchRoomsController{Search: search}
}

func (h *SearchRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		summaries, err := h.Search.Execute(c.Request.Context(), usecase.SearchRoomsInput{Query: q})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"rooms": summaries})
	}
}
