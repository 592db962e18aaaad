package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

const issuer = "financas-pessoais-api"

// JWTClaims representa as claims personalizadas do token JWT
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT e resolve a identidade das requisições
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService(secretKey string, expiration time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Expiration retorna a duração configurada dos tokens
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken gera um token JWT para o usuário
func (s *JWTService) GenerateToken(u *user.User) (string, error) {
	now := s.now()

	claims := JWTClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// RefreshToken renova um token JWT ainda válido
func (s *JWTService) RefreshToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ResolveCurrentPrincipal implementa IdentityResolver.
// A credencial pode ser o valor completo do cabeçalho Authorization ("Bearer <token>") ou apenas o token.
func (s *JWTService) ResolveCurrentPrincipal(_ context.Context, credential string) (*Principal, error) {
	token, ok := ExtractBearerToken(credential)
	if !ok {
		return nil, ErrUnauthenticated
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, errors.Join(ErrUnauthenticated, err)
	}

	return &Principal{
		UserID:          claims.UserID,
		Email:           claims.Email,
		Name:            claims.Name,
		Role:            claims.Role,
		IsAuthenticated: true,
	}, nil
}

// ExtractBearerToken extrai o token de "Bearer <token>"; um token sem prefixo também é aceito
func ExtractBearerToken(credential string) (string, bool) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", false
	}

	parts := strings.Fields(credential)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return parts[1], true
	case len(parts) == 1 && !strings.EqualFold(parts[0], "Bearer"):
		return parts[0], true
	default:
		return "", false
	}
}
