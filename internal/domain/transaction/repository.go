package transaction

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound ocorre quando a transação não existe para o usuário
var ErrNotFound = errors.New("transação não encontrada")

// Filter define os critérios de listagem de transações
type Filter struct {
	Type   Type
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repository define a interface para operações de repositório de transações.
// Toda operação é escopada pelo userID do usuário autenticado.
type Repository interface {
	// Create cria uma nova transação
	Create(ctx context.Context, tx *Transaction) error

	// FindByID busca uma transação do usuário pelo ID
	FindByID(ctx context.Context, userID, id string) (*Transaction, error)

	// List lista as transações do usuário, das mais recentes para as mais antigas
	List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error)

	// Count conta as transações do usuário que atendem ao filtro
	Count(ctx context.Context, userID string, filter Filter) (int, error)

	// Update atualiza uma transação existente
	Update(ctx context.Context, tx *Transaction) error

	// Delete remove uma transação do usuário
	Delete(ctx context.Context, userID, id string) error
}
