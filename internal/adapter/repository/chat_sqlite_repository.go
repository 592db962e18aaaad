package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/hugohenrick/financas-pessoais/internal/domain/chat"
)

const sqliteChatSchema = `
CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	assistant_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_user_assistant
	ON chat_messages(user_id, assistant_id, created_at);
`

// SQLiteChatRepository persiste o histórico de chat em um arquivo SQLite local.
// created_at é gravado em nanossegundos unix para manter a ordenação exata.
type SQLiteChatRepository struct {
	db *sql.DB
}

// NewSQLiteChatRepository cria o repositório e garante que a tabela exista
func NewSQLiteChatRepository(ctx context.Context, db *sql.DB) (*SQLiteChatRepository, error) {
	if _, err := db.ExecContext(ctx, sqliteChatSchema); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela de chat: %w", err)
	}
	return &SQLiteChatRepository{db: db}, nil
}

// SaveMessage salva uma nova mensagem no histórico
func (r *SQLiteChatRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, user_id, assistant_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID,
		message.UserID,
		string(message.AssistantID),
		string(message.Role),
		message.Content,
		message.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar mensagem: %w", err)
	}

	return nil
}

// ListMessages retorna o histórico do par (usuário, assistente) em ordem cronológica
func (r *SQLiteChatRepository) ListMessages(ctx context.Context, userID string, assistantID assistant.ID) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, role, content, created_at
		 FROM chat_messages
		 WHERE user_id = ? AND assistant_id = ?
		 ORDER BY created_at ASC, id ASC`,
		userID, string(assistantID))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico: %w", err)
	}
	defer rows.Close()

	messages := make([]chat.Message, 0)
	for rows.Next() {
		var (
			msg       chat.Message
			role      string
			createdAt int64
		)
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		msg.UserID = userID
		msg.AssistantID = assistantID
		msg.Role = chat.Role(role)
		msg.CreatedAt = time.Unix(0, createdAt).UTC()
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}

	return messages, nil
}

// DeleteMessages remove o histórico do par (usuário, assistente) em um único comando
func (r *SQLiteChatRepository) DeleteMessages(ctx context.Context, userID string, assistantID assistant.ID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE user_id = ? AND assistant_id = ?`,
		userID, string(assistantID))
	if err != nil {
		return 0, fmt.Errorf("erro ao deletar histórico: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas removidas: %w", err)
	}
	return affected, nil
}

// CountMessages conta as mensagens do par (usuário, assistente)
func (r *SQLiteChatRepository) CountMessages(ctx context.Context, userID string, assistantID assistant.ID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE user_id = ? AND assistant_id = ?`,
		userID, string(assistantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar mensagens: %w", err)
	}

	return count, nil
}
