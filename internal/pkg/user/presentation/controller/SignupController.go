package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/user/application/usecase"
	user "go-parley/internal/pkg/user/domain"
)

// SignupController handles account registration only (one controller per endpoint)
type SignupController struct {
	Signup *usecase.SignupUseCase
}

func NewSignupController(signup *usecase.SignupUseCase) *SignupController {
	return &SignupController{Signup: signup}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *SignupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		acct, err := h.Signup.Execute(c.Request.Context(), usecase.SignupInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, user.ErrUsernameTaken), errors.Is(err, user.ErrEmailTaken):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":       acct.ID,
			"username": acct.Username,
			"email":    acct.Email,
		})
	}
}
