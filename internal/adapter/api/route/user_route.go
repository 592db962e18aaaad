package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
)

// SetupUserRoutes configura as rotas administrativas de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController, resolver auth.IdentityResolver) {
	userRouter := router.Group("/users")
	userRouter.Use(auth.JWTAuthMiddleware(resolver))
	userRouter.Use(auth.RoleAuthMiddleware(string(user.RoleAdmin)))
	{
		userRouter.GET("", userController.List)
	}
}
