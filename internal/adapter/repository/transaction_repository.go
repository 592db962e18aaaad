package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/financas-pessoais/internal/domain/transaction"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository implementa transaction.Repository usando PostgreSQL
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository cria uma nova instância de TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) transaction.Repository {
	return &TransactionRepository{
		db: db,
	}
}

const transactionColumns = `id, user_id, type, amount::text, category, description, occurred_at, created_at, updated_at`

// Create implementa transaction.Repository.Create
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, occurred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		string(tx.Type),
		tx.Amount.StringFixed(2),
		tx.Category,
		tx.Description,
		tx.OccurredAt,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao criar transação: %w", err)
	}

	return nil
}

// FindByID implementa transaction.Repository.FindByID
func (r *TransactionRepository) FindByID(ctx context.Context, userID, id string) (*transaction.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`,
		userID, id)
	return scanTransaction(row)
}

// List implementa transaction.Repository.List
func (r *TransactionRepository) List(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
	where, args := buildTransactionFilter(userID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where +
		` ORDER BY occurred_at DESC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar transações: %w", err)
	}
	defer rows.Close()

	txs := make([]*transaction.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}

	return txs, nil
}

// Count implementa transaction.Repository.Count
func (r *TransactionRepository) Count(ctx context.Context, userID string, filter transaction.Filter) (int, error) {
	where, args := buildTransactionFilter(userID, filter)

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("falha ao contar transações: %w", err)
	}
	return count, nil
}

// Update implementa transaction.Repository.Update
func (r *TransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2::numeric, category = $3, description = $4, occurred_at = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8
	`

	result, err := r.db.Exec(ctx, query,
		string(tx.Type),
		tx.Amount.StringFixed(2),
		tx.Category,
		tx.Description,
		tx.OccurredAt,
		tx.UpdatedAt,
		tx.UserID,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar transação: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

// Delete implementa transaction.Repository.Delete
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("falha ao excluir transação: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func buildTransactionFilter(userID string, filter transaction.Filter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var (
		tx     transaction.Transaction
		txType string
		amount string
	)
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&txType,
		&amount,
		&tx.Category,
		&tx.Description,
		&tx.OccurredAt,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao ler transação: %w", err)
	}

	tx.Type = transaction.Type(txType)
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("valor inválido na transação %s: %w", tx.ID, err)
	}
	return &tx, nil
}
