package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChatRepository persiste o histórico de chat no PostgreSQL
type PostgresChatRepository struct {
	db *pgxpool.Pool
}

// NewPostgresChatRepository cria um novo repositório de chat sobre o pool informado
func NewPostgresChatRepository(db *pgxpool.Pool) chat.Repository {
	return &PostgresChatRepository{
		db: db,
	}
}

// SaveMessage salva uma nova mensagem no histórico
func (r *PostgresChatRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	// Se o ID da mensagem estiver vazio, gerar um novo
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	query := `
		INSERT INTO chat_messages (id, user_id, assistant_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.UserID,
		string(message.AssistantID),
		string(message.Role),
		message.Content,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar mensagem: %w", err)
	}

	return nil
}

// ListMessages retorna o histórico do par (usuário, assistente) em ordem cronológica
func (r *PostgresChatRepository) ListMessages(ctx context.Context, userID string, assistantID assistant.ID) ([]chat.Message, error) {
	query := `
		SELECT id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1 AND assistant_id = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, string(assistantID))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico: %w", err)
	}
	defer rows.Close()

	messages := make([]chat.Message, 0)
	for rows.Next() {
		var (
			msg  chat.Message
			role string
		)
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		msg.UserID = userID
		msg.AssistantID = assistantID
		msg.Role = chat.Role(role)
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}

	return messages, nil
}

// DeleteMessages remove o histórico do par (usuário, assistente) em um único comando
func (r *PostgresChatRepository) DeleteMessages(ctx context.Context, userID string, assistantID assistant.ID) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM chat_messages WHERE user_id = $1 AND assistant_id = $2`,
		userID, string(assistantID))
	if err != nil {
		return 0, fmt.Errorf("erro ao deletar histórico: %w", err)
	}

	return result.RowsAffected(), nil
}

// CountMessages conta as mensagens do par (usuário, assistente)
func (r *PostgresChatRepository) CountMessages(ctx context.Context, userID string, assistantID assistant.ID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE user_id = $1 AND assistant_id = $2`,
		userID, string(assistantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar mensagens: %w", err)
	}

	return count, nil
}
