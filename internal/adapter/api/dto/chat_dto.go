package dto

import (
	"time"

	domainchat "github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/samber/lo"
)

// SendMessageRequest representa uma nova mensagem do usuário para o assistente
type SendMessageRequest struct {
	Content string `json:"content" example:"Como posso reduzir meus gastos com mercado?"`
}

// ChatMessageResponse representa um turno do histórico
type ChatMessageResponse struct {
	ID          string    `json:"id"`
	AssistantID string    `json:"assistant_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatHistoryResponse representa o histórico de um assistente, do mais antigo ao mais recente
type ChatHistoryResponse struct {
	AssistantID string                `json:"assistant_id"`
	Messages    []ChatMessageResponse `json:"messages"`
}

// ChatReplyResponse representa os turnos gravados por uma nova mensagem
type ChatReplyResponse struct {
	UserMessage      ChatMessageResponse `json:"user_message"`
	AssistantMessage ChatMessageResponse `json:"assistant_message"`
}

// ToChatMessageResponse converte uma mensagem do domínio para DTO
func ToChatMessageResponse(m domainchat.Message) ChatMessageResponse {
	return ChatMessageResponse{
		ID:          m.ID,
		AssistantID: string(m.AssistantID),
		Role:        string(m.Role),
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}

// ToChatHistoryResponse converte o histórico mantendo a ordem recebida
func ToChatHistoryResponse(assistantID string, messages []domainchat.Message) ChatHistoryResponse {
	return ChatHistoryResponse{
		AssistantID: assistantID,
		Messages:    lo.Map(messages, func(m domainchat.Message, _ int) ChatMessageResponse { return ToChatMessageResponse(m) }),
	}
}

// ToChatReplyResponse converte os dois turnos de uma resposta para DTO
func ToChatReplyResponse(userMessage, assistantMessage domainchat.Message) ChatReplyResponse {
	return ChatReplyResponse{
		UserMessage:      ToChatMessageResponse(userMessage),
		AssistantMessage: ToChatMessageResponse(assistantMessage),
	}
}
