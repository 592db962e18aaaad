package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
)

// currentUserID obtém o usuário autenticado pelo middleware ou responde 401
func currentUserID(ctx *gin.Context) (string, bool) {
	principal, ok := auth.GetCurrentPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(auth.MessageNotAuthenticated))
		return "", false
	}
	return principal.UserID, true
}
