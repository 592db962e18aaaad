package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
)

// SetupTransactionRoutes configura as rotas de transações
func SetupTransactionRoutes(router *gin.RouterGroup, transactionController *controller.TransactionController, resolver auth.IdentityResolver) {
	transactionRouter := router.Group("/transactions")
	transactionRouter.Use(auth.JWTAuthMiddleware(resolver))
	{
		transactionRouter.POST("", transactionController.Create)
		transactionRouter.GET("", transactionController.List)
		transactionRouter.GET("/summary", transactionController.Summary)
		transactionRouter.GET("/:id", transactionController.Get)
		transactionRouter.PUT("/:id", transactionController.Update)
		transactionRouter.DELETE("/:id", transactionController.Delete)
	}
}
