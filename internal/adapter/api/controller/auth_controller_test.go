package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/stretchr/testify/require"
)

// memoryUsers é um user.Repository em memória para os testes de controller
type memoryUsers struct {
	mu    sync.Mutex
	users []*user.User
}

func (m *memoryUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memoryUsers) List(_ context.Context, limit, offset int) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.users) {
		return []*user.User{}, nil
	}
	end := min(offset+limit, len(m.users))
	return m.users[offset:end], nil
}

func (m *memoryUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memoryUsers) UpdateLastLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			now := time.Now().UTC()
			u.LastLoginAt = &now
			return nil
		}
	}
	return user.ErrNotFound
}

func newAuthRouter(t *testing.T, users user.Repository) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	c := NewAuthController(users, tokens, logger.NewNopLogger())
	router := gin.New()
	router.POST("/auth/register", c.Register)
	router.POST("/auth/login", c.Login)
	router.POST("/auth/refresh-token", c.RefreshToken)
	router.GET("/auth/me", auth.JWTAuthMiddleware(tokens), c.Me)

	uc := NewUserController(users, logger.NewNopLogger())
	router.GET("/users", auth.JWTAuthMiddleware(tokens), auth.RoleAuthMiddleware("admin"), uc.List)
	return router, tokens
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

type loginResult struct {
	Success bool              `json:"success"`
	Data    dto.LoginResponse `json:"data"`
	Error   string            `json:"error"`
}

func TestAuthController_RegisterLoginMe(t *testing.T) {
	req := require.New(t)
	users := &memoryUsers{}
	router, _ := newAuthRouter(t, users)

	w := postJSON(router, "/auth/register", `{"name":"Ana","email":"Ana@Example.com","password":"senha-segura"}`)
	req.Equal(http.StatusCreated, w.Code)

	var registered loginResult
	req.NoError(json.Unmarshal(w.Body.Bytes(), &registered))
	req.True(registered.Success)
	req.Equal("ana@example.com", registered.Data.User.Email)
	req.Equal("member", registered.Data.User.Role)
	req.NotEmpty(registered.Data.AccessToken)

	w = postJSON(router, "/auth/register", `{"name":"Outra","email":"ana@example.com","password":"senha-segura"}`)
	req.Equal(http.StatusConflict, w.Code)

	w = postJSON(router, "/auth/login", `{"email":"ana@example.com","password":"errada123"}`)
	req.Equal(http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/auth/login", `{"email":"ANA@example.com","password":"senha-segura"}`)
	req.Equal(http.StatusOK, w.Code)

	var logged loginResult
	req.NoError(json.Unmarshal(w.Body.Bytes(), &logged))
	req.Equal(registered.Data.User.ID, logged.Data.User.ID)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+logged.Data.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), `"email":"ana@example.com"`)

	u, err := users.FindByEmail(context.Background(), "ana@example.com")
	req.NoError(err)
	req.NotNil(u.LastLoginAt)
}

func TestAuthController_Login_Blocked(t *testing.T) {
	u, err := user.NewUser("Bia", "bia@example.com", "senha-segura")
	require.NoError(t, err)
	u.Status = user.StatusBlocked

	router, _ := newAuthRouter(t, &memoryUsers{users: []*user.User{u}})

	w := postJSON(router, "/auth/login", `{"email":"bia@example.com","password":"senha-segura"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthController_RefreshToken(t *testing.T) {
	req := require.New(t)
	u, err := user.NewUser("Caio", "caio@example.com", "senha-segura")
	req.NoError(err)
	router, tokens := newAuthRouter(t, &memoryUsers{users: []*user.User{u}})

	token, err := tokens.GenerateToken(u)
	req.NoError(err)

	w := postJSON(router, "/auth/refresh-token", `{"refresh_token":"`+token+`"}`)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), `"access_token"`)

	w = postJSON(router, "/auth/refresh-token", `{"refresh_token":"invalido"}`)
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestUserController_List_AdminOnly(t *testing.T) {
	req := require.New(t)
	member, err := user.NewUser("Membro", "membro@example.com", "senha-segura")
	req.NoError(err)
	admin, err := user.NewUser("Admin", "admin@example.com", "senha-segura")
	req.NoError(err)
	admin.Role = user.RoleAdmin

	router, tokens := newAuthRouter(t, &memoryUsers{users: []*user.User{member, admin}})

	get := func(u *user.User) *httptest.ResponseRecorder {
		token, err := tokens.GenerateToken(u)
		req.NoError(err)
		r := httptest.NewRequest(http.MethodGet, "/users?page=1&page_size=1", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	req.Equal(http.StatusForbidden, get(member).Code)

	w := get(admin)
	req.Equal(http.StatusOK, w.Code)

	var result struct {
		Data struct {
			Items      []dto.UserResponse `json:"items"`
			TotalCount int                `json:"total_count"`
			TotalPages int                `json:"total_pages"`
		} `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	req.Len(result.Data.Items, 1)
	req.Equal(2, result.Data.TotalCount)
	req.Equal(2, result.Data.TotalPages)
	req.NotContains(w.Body.String(), "password")
}
