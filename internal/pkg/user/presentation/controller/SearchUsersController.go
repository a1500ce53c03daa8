package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"
)

// SearchUsersController handles username substring search, excluding the caller.
type SearchUsersController struct {
	Search *usecase.SearchUsersUseCase
}

func NewSearchUsersController(search *usecase.SearchUsersUseCase) *SearchUsersController {
	return &SearchUsersController{Search: search}
}

func (h *SearchUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		acct := auth.CurrentAccount(c)

		accounts, err := h.Search.Execute(c.Request.Context(), usecase.SearchUsersInput{
			Query:    q,
			CallerID: acct.ID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}

		out := make([]gin.H, 0, len(accounts))
		for _, a := range accounts {
			out = append(out, gin.H{"id": a.ID, "username": a.Username})
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}
