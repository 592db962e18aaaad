package user

import (
	"context"
	"errors"
)

var (
	// ErrNotFound ocorre quando o usuário não existe
	ErrNotFound = errors.New("usuário não encontrado")
	// ErrDuplicateEmail ocorre quando já existe um usuário com o mesmo email
	ErrDuplicateEmail = errors.New("usuário com mesmo email já existe")
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os usuários com paginação
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Count conta quantos usuários existem
	Count(ctx context.Context) (int, error)

	// UpdateLastLogin atualiza o timestamp de último login do usuário
	UpdateLastLogin(ctx context.Context, id string) error
}
