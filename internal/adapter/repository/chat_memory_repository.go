package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/hugohenrick/financas-pessoais/internal/domain/chat"
)

type conversationKey struct {
	userID      string
	assistantID assistant.ID
}

// MemoryChatRepository mantém o histórico de chat em memória
type MemoryChatRepository struct {
	mu            sync.RWMutex
	conversations map[conversationKey][]chat.Message
}

// NewMemoryChatRepository cria um repositório de chat em memória vazio
func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		conversations: make(map[conversationKey][]chat.Message),
	}
}

// SaveMessage salva uma nova mensagem no histórico
func (r *MemoryChatRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := conversationKey{userID: message.UserID, assistantID: message.AssistantID}
	r.conversations[key] = append(r.conversations[key], *message)
	return nil
}

// ListMessages retorna uma cópia do histórico ordenada por data de criação
func (r *MemoryChatRepository) ListMessages(ctx context.Context, userID string, assistantID assistant.ID) ([]chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	messages := append(make([]chat.Message, 0), r.conversations[conversationKey{userID, assistantID}]...)
	r.mu.RUnlock()

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// DeleteMessages remove o histórico do par (usuário, assistente)
func (r *MemoryChatRepository) DeleteMessages(ctx context.Context, userID string, assistantID assistant.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := conversationKey{userID, assistantID}
	removed := len(r.conversations[key])
	delete(r.conversations, key)
	return int64(removed), nil
}

// CountMessages conta as mensagens do par (usuário, assistente)
func (r *MemoryChatRepository) CountMessages(ctx context.Context, userID string, assistantID assistant.ID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conversations[conversationKey{userID, assistantID}]), nil
}

