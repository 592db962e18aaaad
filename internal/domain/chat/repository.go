package chat

import (
	"context"

	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
)

// Repository define a interface para operações de repositório do histórico de chat.
// Toda operação recebe o userID como filtro obrigatório.
type Repository interface {
	// SaveMessage salva uma nova mensagem no histórico
	SaveMessage(ctx context.Context, message *Message) error

	// ListMessages retorna o histórico do par (usuário, assistente), do mais antigo ao mais recente
	ListMessages(ctx context.Context, userID string, assistantID assistant.ID) ([]Message, error)

	// DeleteMessages remove todo o histórico do par (usuário, assistente) e retorna quantas linhas saíram
	DeleteMessages(ctx context.Context, userID string, assistantID assistant.ID) (int64, error)

	// CountMessages conta quantas mensagens o par (usuário, assistente) tem
	CountMessages(ctx context.Context, userID string, assistantID assistant.ID) (int, error)
}
