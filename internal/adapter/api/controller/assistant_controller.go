package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
)

// AssistantController expõe o catálogo de assistentes
type AssistantController struct {
	registry *assistant.Registry
}

// NewAssistantController cria uma nova instância de AssistantController
func NewAssistantController(registry *assistant.Registry) *AssistantController {
	return &AssistantController{
		registry: registry,
	}
}

// List lista os assistentes disponíveis
// @Summary Lista os assistentes
// @Description Lista os assistentes de chat disponíveis, sem o prompt de sistema
// @Tags assistants
// @Produce json
// @Success 200 {object} dto.Result{data=[]dto.AssistantResponse}
// @Router /assistants [get]
func (c *AssistantController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToAssistantListResponse(c.registry.List())))
}

// Get busca um assistente pelo identificador
// @Summary Busca um assistente
// @Tags assistants
// @Produce json
// @Param id path string true "Identificador do assistente"
// @Success 200 {object} dto.Result{data=dto.AssistantResponse}
// @Failure 404 {object} dto.Result
// @Router /assistants/{id} [get]
func (c *AssistantController) Get(ctx *gin.Context) {
	persona, err := c.registry.Lookup(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResult(messageUnknownAssistant))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToAssistantResponse(persona)))
}
