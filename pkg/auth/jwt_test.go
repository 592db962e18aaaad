package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)
	return svc
}

func testUser() *user.User {
	return &user.User{ID: "u-1", Email: "ana@example.com", Name: "Ana", Role: user.RoleMember}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	require.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t)

	token, err := svc.GenerateToken(testUser())
	req.NoError(err)

	claims, err := svc.ValidateToken(token)
	req.NoError(err)
	req.Equal("u-1", claims.UserID)
	req.Equal("ana@example.com", claims.Email)
	req.Equal("member", claims.Role)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken(testUser())
	req.NoError(err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	req.ErrorIs(err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	req := require.New(t)
	other, err := NewJWTService("outro-segredo", time.Hour)
	req.NoError(err)

	token, err := other.GenerateToken(testUser())
	req.NoError(err)

	_, err = newTestService(t).ValidateToken(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	req := require.New(t)
	claims := JWTClaims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	req.NoError(err)

	_, err = newTestService(t).ValidateToken(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestJWTService_RefreshToken(t *testing.T) {
	req := require.New(t)
	svc := newTestService(t)

	token, err := svc.GenerateToken(testUser())
	req.NoError(err)

	refreshed, err := svc.RefreshToken(token)
	req.NoError(err)

	claims, err := svc.ValidateToken(refreshed)
	req.NoError(err)
	req.Equal("u-1", claims.UserID)

	_, err = svc.RefreshToken("lixo")
	req.ErrorIs(err, ErrInvalidToken)
}

func TestJWTService_ResolveCurrentPrincipal(t *testing.T) {
	svc := newTestService(t)
	admin := testUser()
	admin.Role = user.RoleAdmin
	token, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	t.Run("aceita cabeçalho Bearer", func(t *testing.T) {
		req := require.New(t)
		p, err := svc.ResolveCurrentPrincipal(context.Background(), "Bearer "+token)
		req.NoError(err)
		req.Equal("u-1", p.UserID)
		req.True(p.IsAuthenticated)
		req.True(p.IsAdmin())
	})

	t.Run("aceita token puro", func(t *testing.T) {
		p, err := svc.ResolveCurrentPrincipal(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "u-1", p.UserID)
	})

	for _, credential := range []string{"", "   ", "Bearer", "Basic abc def", "Bearer nao-e-jwt"} {
		t.Run("rejeita "+credential, func(t *testing.T) {
			_, err := svc.ResolveCurrentPrincipal(context.Background(), credential)
			require.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	req := require.New(t)

	token, ok := ExtractBearerToken("bearer abc")
	req.True(ok)
	req.Equal("abc", token)

	token, ok = ExtractBearerToken("abc")
	req.True(ok)
	req.Equal("abc", token)

	_, ok = ExtractBearerToken("Bearer a b")
	req.False(ok)
}

func TestPrincipal_IsAdmin(t *testing.T) {
	var nilPrincipal *Principal
	require.False(t, nilPrincipal.IsAdmin())
	require.False(t, (&Principal{Role: "admin"}).IsAdmin())
	require.True(t, (&Principal{Role: "admin", IsAuthenticated: true}).IsAdmin())
}
