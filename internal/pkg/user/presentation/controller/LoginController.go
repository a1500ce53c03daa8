package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"
	user "go-parley/internal/pkg/user/domain"
)

// LoginController authenticates credentials and issues the session cookie.
// Logging in bumps the account's session version, so tokens from earlier
// logins stop verifying immediately.
type LoginController struct {
	Login *usecase.LoginUseCase
}

func NewLoginController(login *usecase.LoginUseCase) *LoginController {
	return &LoginController{Login: login}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := h.Login.Execute(c.Request.Context(), usecase.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, user.ErrBadLogin):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			case errors.Is(err, user.ErrNotVerified):
				c.JSON(http.StatusForbidden, gin.H{"error": "account not verified"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			}
			return
		}

		maxAge := int(h.Login.Tokens.TTL().Seconds())
		c.SetCookie(auth.CookieName, res.Token, maxAge, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"token": res.Token,
			"user": gin.H{
				"id":       res.Account.ID,
				"username": res.Account.Username,
				"email":    res.Account.Email,
			},
		})
	}
}
