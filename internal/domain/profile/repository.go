package profile

import "context"

// Repository define a interface para persistência do perfil financeiro
type Repository interface {
	// FindByUserID busca o perfil do usuário
	FindByUserID(ctx context.Context, userID string) (*FinancialProfile, error)

	// Upsert cria ou substitui o perfil do usuário
	Upsert(ctx context.Context, p *FinancialProfile) error
}
