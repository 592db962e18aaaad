package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
)

// SetupProfileRoutes configura as rotas do perfil financeiro
func SetupProfileRoutes(router *gin.RouterGroup, profileController *controller.ProfileController, resolver auth.IdentityResolver) {
	profileRouter := router.Group("/profile")
	profileRouter.Use(auth.JWTAuthMiddleware(resolver))
	{
		profileRouter.GET("", profileController.Get)
		profileRouter.PUT("", profileController.Put)
	}
}
