package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, resolver auth.IdentityResolver) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)

		// Renovação usa o próprio token no corpo da requisição
		authRouter.POST("/refresh-token", authController.RefreshToken)

		authRouter.GET("/me", auth.JWTAuthMiddleware(resolver), authController.Me)
	}
}
