package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

// UserController gerencia as requisições administrativas de usuários
type UserController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository, log logger.Logger) *UserController {
	return &UserController{
		userRepository: userRepository,
		logger:         log,
	}
}

// List lista os usuários com paginação
// @Summary Lista usuários
// @Description Lista todos os usuários. Restrito a administradores.
// @Tags users
// @Produce json
// @Param page query int false "Número da página" default(1)
// @Param page_size query int false "Tamanho da página" default(20)
// @Success 200 {object} dto.Result{data=dto.PageResponse}
// @Failure 401 {object} dto.Result
// @Failure 403 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	pagination := dto.GetPagination(page, pageSize)

	users, err := c.userRepository.List(ctx.Request.Context(), pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("Erro ao listar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to list users"))
		return
	}

	total, err := c.userRepository.Count(ctx.Request.Context())
	if err != nil {
		c.logger.Error("Erro ao contar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to list users"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToUserListResponse(users, total, pagination)))
}
