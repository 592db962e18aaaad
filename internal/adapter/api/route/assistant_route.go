package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
)

// SetupAssistantRoutes configura as rotas públicas do catálogo de assistentes
func SetupAssistantRoutes(router *gin.RouterGroup, assistantController *controller.AssistantController) {
	assistantRouter := router.Group("/assistants")
	{
		assistantRouter.GET("", assistantController.List)
		assistantRouter.GET("/:id", assistantController.Get)
	}
}
