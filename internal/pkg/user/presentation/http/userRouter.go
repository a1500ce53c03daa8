package http

import (
	"github.com/gin-gonic/gin"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
	"go-parley/internal/pkg/user/presentation/controller"
)

// RegisterRoutes registers account endpoints. Signup and login go on the
// public group; logout and search require an authenticated session.
func RegisterRoutes(public, authed *gin.RouterGroup, repo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, sessions *auth.Verifier) {
	signupCtl := controller.NewSignupController(usecase.NewSignupUseCase(repo, hasher))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(repo, hasher, tokens, sessions))
	logoutCtl := controller.NewLogoutController(usecase.NewLogoutUseCase(repo, sessions))
	searchCtl := controller.NewSearchUsersController(usecase.NewSearchUsersUseCase(repo))

	public.POST("/signup", signupCtl.Handle())
	public.POST("/login", loginCtl.Handle())

	authed.POST("/logout", logoutCtl.Handle())
	authed.GET("/users/search", searchCtl.Handle())
}
