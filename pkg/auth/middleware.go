package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chave usada para armazenar o principal no contexto do Gin
const principalContextKey = "principal"

// MessageNotAuthenticated é a mensagem devolvida ao cliente quando não há principal válido
const MessageNotAuthenticated = "Not authenticated"

// JWTAuthMiddleware cria um middleware que resolve o principal a partir do cabeçalho Authorization
func JWTAuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.ResolveCurrentPrincipal(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			message := MessageNotAuthenticated
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(message))
			return
		}

		// Armazenar o principal no contexto
		c.Set(principalContextKey, principal)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel/função do usuário
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetCurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(MessageNotAuthenticated))
			return
		}

		for _, r := range roles {
			if principal.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, errorBody("Access denied"))
	}
}

// GetCurrentPrincipal obtém o principal definido pelo JWTAuthMiddleware
func GetCurrentPrincipal(c *gin.Context) (*Principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.IsAuthenticated
}

// errorBody monta o envelope {success:false, error} usado pelas respostas da API
func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}
