package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	domainchat "github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/chat"
)

// Mensagens devolvidas ao cliente, nunca o erro original do armazenamento
const (
	messageUnknownAssistant   = "Unknown assistant"
	messageLoadHistoryFailed  = "Failed to load chat history"
	messageClearHistoryFailed = "Failed to clear chat history"
	messageSaveMessageFailed  = "Failed to save chat message"
	messageAssistantDown      = "Assistant is unavailable"
)

const sseKeepAlive = 25 * time.Second

// ChatSessions é o contrato do gerenciador de sessões consumido pelo controller
type ChatSessions interface {
	ClearHistory(ctx context.Context, assistantID, credential string) error
	ExportHistory(ctx context.Context, assistantID, credential string) ([]domainchat.Message, error)
	SendMessage(ctx context.Context, assistantID, credential, content string) (*chat.Reply, error)
	Subscribe(ctx context.Context, assistantID, credential string) (<-chan chat.Invalidation, error)
}

// ChatController gerencia as requisições de histórico e mensagens dos assistentes
type ChatController struct {
	sessions ChatSessions
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(sessions ChatSessions) *ChatController {
	return &ChatController{
		sessions: sessions,
	}
}

// GetHistory retorna o histórico do usuário com o assistente
// @Summary Exporta o histórico de chat
// @Description Retorna as mensagens do usuário autenticado com o assistente, da mais antiga para a mais recente
// @Tags chat
// @Produce json
// @Param assistant path string true "Assistente (income ou expenditure)"
// @Success 200 {object} dto.Result{data=dto.ChatHistoryResponse}
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /chat/{assistant}/history [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	assistantID := ctx.Param("assistant")

	messages, err := c.sessions.ExportHistory(ctx.Request.Context(), assistantID, ctx.GetHeader("Authorization"))
	if err != nil {
		writeChatError(ctx, err, messageLoadHistoryFailed)
		return
	}

	id, _ := assistant.ParseID(assistantID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToChatHistoryResponse(id.String(), messages)))
}

// ClearHistory remove o histórico do usuário com o assistente
// @Summary Limpa o histórico de chat
// @Description Remove todas as mensagens do usuário autenticado com o assistente
// @Tags chat
// @Produce json
// @Param assistant path string true "Assistente (income ou expenditure)"
// @Success 200 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /chat/{assistant}/history [delete]
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	if err := c.sessions.ClearHistory(ctx.Request.Context(), ctx.Param("assistant"), ctx.GetHeader("Authorization")); err != nil {
		writeChatError(ctx, err, messageClearHistoryFailed)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(nil))
}

// SendMessage envia uma mensagem ao assistente
// @Summary Envia uma mensagem ao assistente
// @Description Grava a mensagem do usuário, gera a resposta do assistente e devolve os dois turnos
// @Tags chat
// @Accept json
// @Produce json
// @Param assistant path string true "Assistente (income ou expenditure)"
// @Param message body dto.SendMessageRequest true "Mensagem"
// @Success 201 {object} dto.Result{data=dto.ChatReplyResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Failure 502 {object} dto.Result
// @Security BearerAuth
// @Router /chat/{assistant}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	// corpo inválido vira conteúdo vazio: o SessionManager valida identidade, assistente e conteúdo, nessa ordem
	var request dto.SendMessageRequest
	_ = ctx.ShouldBindJSON(&request)

	reply, err := c.sessions.SendMessage(ctx.Request.Context(), ctx.Param("assistant"), ctx.GetHeader("Authorization"), request.Content)
	if err != nil {
		writeChatError(ctx, err, messageSaveMessageFailed)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResult(dto.ToChatReplyResponse(reply.UserMessage, reply.AssistantMessage)))
}

// Events abre um stream SSE com as invalidações do histórico
// @Summary Stream de invalidações do histórico
// @Description Envia um evento "invalidate" sempre que o histórico do usuário com o assistente muda. Aceita o token também em access_token, pois EventSource não envia cabeçalhos.
// @Tags chat
// @Produce text/event-stream
// @Param assistant path string true "Assistente (income ou expenditure)"
// @Param access_token query string false "Token JWT"
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Router /chat/{assistant}/events [get]
func (c *ChatController) Events(ctx *gin.Context) {
	credential := ctx.GetHeader("Authorization")
	if credential == "" {
		credential = ctx.Query("access_token")
	}

	events, err := c.sessions.Subscribe(ctx.Request.Context(), ctx.Param("assistant"), credential)
	if err != nil {
		writeChatError(ctx, err, messageLoadHistoryFailed)
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.SSEvent("ready", gin.H{"assistant_id": ctx.Param("assistant")})
	ctx.Writer.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent("invalidate", evt)
			return true
		case <-ticker.C:
			ctx.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}

// writeChatError converte os erros do SessionManager no envelope {success:false, error}
func writeChatError(ctx *gin.Context, err error, storageMessage string) {
	switch {
	case errors.Is(err, chat.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(auth.MessageNotAuthenticated))
	case errors.Is(err, chat.ErrUnknownAssistant):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResult(messageUnknownAssistant))
	case errors.Is(err, chat.ErrInvalidMessage):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult(err.Error()))
	case errors.Is(err, chat.ErrCompletionFailure):
		ctx.JSON(http.StatusBadGateway, dto.NewErrorResult(messageAssistantDown))
	default:
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult(storageMessage))
	}
}
