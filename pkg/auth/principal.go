package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated ocorre quando a credencial não identifica um usuário válido
var ErrUnauthenticated = errors.New("não autenticado")

// Principal representa a identidade autenticada que está fazendo a requisição
type Principal struct {
	UserID          string
	Email           string
	Name            string
	Role            string
	IsAuthenticated bool
}

// IsAdmin informa se o principal tem privilégio elevado
func (p *Principal) IsAdmin() bool {
	return p != nil && p.IsAuthenticated && p.Role == "admin"
}

// IdentityResolver resolve a credencial opaca da requisição no principal autenticado
type IdentityResolver interface {
	ResolveCurrentPrincipal(ctx context.Context, credential string) (*Principal, error)
}

type principalKey struct{}

// WithPrincipal guarda o principal no contexto
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext obtém o principal do contexto, se houver
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil && p.IsAuthenticated
}
