package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
)

var (
	ErrEmptyContent = errors.New("conteúdo da mensagem não pode ser vazio")
	ErrInvalidRole  = errors.New("papel da mensagem inválido")
	ErrMissingUser  = errors.New("usuário da mensagem não informado")
)

// Role representa o autor de um turno da conversa
type Role string

// Constantes para Role
const (
	RoleUser      Role = "user"      // Mensagem enviada pelo usuário
	RoleAssistant Role = "assistant" // Resposta do assistente
)

// Valid verifica se o papel é conhecido
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message representa um turno da conversa entre um usuário e um assistente
type Message struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	AssistantID assistant.ID `json:"assistant_id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewMessage cria uma nova mensagem validada com ID e data de criação
func NewMessage(userID string, assistantID assistant.ID, role Role, content string, createdAt time.Time) (*Message, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	return &Message{
		ID:          uuid.New().String(),
		UserID:      userID,
		AssistantID: assistantID,
		Role:        role,
		Content:     content,
		CreatedAt:   createdAt.UTC(),
	}, nil
}
