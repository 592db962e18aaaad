package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
)

// SetupChatRoutes configura as rotas de chat com os assistentes.
// A identidade é resolvida pelo SessionManager a partir do cabeçalho Authorization,
// por isso o grupo não usa o middleware JWT.
func SetupChatRoutes(router *gin.RouterGroup, chatController *controller.ChatController) {
	chatRouter := router.Group("/chat/:assistant")
	{
		chatRouter.GET("/history", chatController.GetHistory)
		chatRouter.DELETE("/history", chatController.ClearHistory)
		chatRouter.POST("/messages", chatController.SendMessage)
		chatRouter.GET("/events", chatController.Events)
	}
}
