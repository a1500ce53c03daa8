package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"
)

// LogoutController revokes every outstanding token for the caller and
// clears the session cookie.
type LogoutController struct {
	Logout *usecase.LogoutUseCase
}

func NewLogoutController(logout *usecase.LogoutUseCase) *LogoutController {
	return &LogoutController{Logout: logout}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := auth.CurrentAccount(c)
		if acct == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		if err := h.Logout.Execute(c.Request.Context(), usecase.LogoutInput{UserID: acct.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}

		c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
