package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/repository"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	domainchat "github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/chat"
	"github.com/hugohenrick/financas-pessoais/pkg/llm"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/stretchr/testify/require"
)

type countingChatStore struct {
	domainchat.Repository
	calls atomic.Int32
}

func (s *countingChatStore) SaveMessage(ctx context.Context, m *domainchat.Message) error {
	s.calls.Add(1)
	return s.Repository.SaveMessage(ctx, m)
}

func (s *countingChatStore) ListMessages(ctx context.Context, userID string, id assistant.ID) ([]domainchat.Message, error) {
	s.calls.Add(1)
	return s.Repository.ListMessages(ctx, userID, id)
}

func (s *countingChatStore) DeleteMessages(ctx context.Context, userID string, id assistant.ID) (int64, error) {
	s.calls.Add(1)
	return s.Repository.DeleteMessages(ctx, userID, id)
}

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	return "eco: " + req.Messages[len(req.Messages)-1].Content, nil
}

type chatFixture struct {
	router *gin.Engine
	store  *countingChatStore
	tokens *auth.JWTService
}

func newChatFixture(t *testing.T) chatFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	store := &countingChatStore{Repository: repository.NewMemoryChatRepository()}
	manager := chat.NewSessionManager(chat.SessionManagerConfig{
		Resolver:  tokens,
		Store:     store,
		Completer: echoCompleter{},
		Logger:    logger.NewNopLogger(),
	})

	router := gin.New()
	api := router.Group("/api/v1")
	c := NewChatController(manager)
	api.GET("/chat/:assistant/history", c.GetHistory)
	api.DELETE("/chat/:assistant/history", c.ClearHistory)
	api.POST("/chat/:assistant/messages", c.SendMessage)

	return chatFixture{router: router, store: store, tokens: tokens}
}

func (f chatFixture) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.tokens.GenerateToken(&user.User{ID: userID, Email: userID + "@example.com", Role: user.RoleMember})
	require.NoError(t, err)
	return "Bearer " + token
}

func (f chatFixture) do(method, path, credential, body string) (*httptest.ResponseRecorder, dto.Result) {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if credential != "" {
		r.Header.Set("Authorization", credential)
	}
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	var result dto.Result
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return w, result
}

func TestChatController_GetHistory_Unauthenticated(t *testing.T) {
	f := newChatFixture(t)

	w, result := f.do(http.MethodGet, "/api/v1/chat/income/history", "", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Not authenticated"}`, w.Body.String())
	require.False(t, result.Success)
	require.Zero(t, f.store.calls.Load())
}

func TestChatController_UnknownAssistant(t *testing.T) {
	f := newChatFixture(t)

	w, result := f.do(http.MethodDelete, "/api/v1/chat/savings/history", f.bearer(t, "u-1"), "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Unknown assistant", result.Error)
	require.Zero(t, f.store.calls.Load())
}

func TestChatController_SendExportClear(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	credential := f.bearer(t, "u-1")

	w, result := f.do(http.MethodPost, "/api/v1/chat/expenditure/messages", credential, `{"content":"Como corto gastos?"}`)
	req.Equal(http.StatusCreated, w.Code)
	req.True(result.Success)

	w, _ = f.do(http.MethodGet, "/api/v1/chat/expenditure/history", credential, "")
	req.Equal(http.StatusOK, w.Code)

	var history struct {
		Success bool                    `json:"success"`
		Data    dto.ChatHistoryResponse `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &history))
	req.True(history.Success)
	req.Equal("expenditure", history.Data.AssistantID)
	req.Len(history.Data.Messages, 2)
	req.Equal("user", history.Data.Messages[0].Role)
	req.Equal("eco: Como corto gastos?", history.Data.Messages[1].Content)

	// outro usuário não enxerga o histórico
	w, _ = f.do(http.MethodGet, "/api/v1/chat/expenditure/history", f.bearer(t, "u-2"), "")
	req.NoError(json.Unmarshal(w.Body.Bytes(), &history))
	req.Empty(history.Data.Messages)

	w, result = f.do(http.MethodDelete, "/api/v1/chat/expenditure/history", credential, "")
	req.Equal(http.StatusOK, w.Code)
	req.True(result.Success)

	w, _ = f.do(http.MethodGet, "/api/v1/chat/expenditure/history", credential, "")
	req.NoError(json.Unmarshal(w.Body.Bytes(), &history))
	req.NotNil(history.Data.Messages)
	req.Empty(history.Data.Messages)
}

func TestChatController_SendMessage_InvalidBody(t *testing.T) {
	f := newChatFixture(t)

	w, result := f.do(http.MethodPost, "/api/v1/chat/income/messages", f.bearer(t, "u-1"), `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, result.Success)
}

func TestChatController_SendMessage_ChecksIdentityBeforeBody(t *testing.T) {
	f := newChatFixture(t)

	tests := []struct {
		name       string
		path       string
		credential string
		body       string
		status     int
		message    string
	}{
		{"sem credencial e corpo vazio", "/api/v1/chat/income/messages", "", `{}`, http.StatusUnauthorized, "Not authenticated"},
		{"sem credencial e corpo malformado", "/api/v1/chat/income/messages", "", `{"content":`, http.StatusUnauthorized, "Not authenticated"},
		{"assistente desconhecido e corpo vazio", "/api/v1/chat/savings/messages", f.bearer(t, "u-1"), `{}`, http.StatusNotFound, "Unknown assistant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, result := f.do(http.MethodPost, tt.path, tt.credential, tt.body)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.message, result.Error)
		})
	}
	require.Zero(t, f.store.calls.Load())

	w, result := f.do(http.MethodPost, "/api/v1/chat/income/messages", f.bearer(t, "u-1"), `{"content":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, result.Success)
	require.Zero(t, f.store.calls.Load())
}

func TestChatController_GetHistory_NormalizesAssistantID(t *testing.T) {
	f := newChatFixture(t)

	w, _ := f.do(http.MethodGet, "/api/v1/chat/%20INCOME%20/history", f.bearer(t, "u-1"), "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"assistant_id":"income"`)
}

// streamSessions devolve um canal controlado pelo teste
type streamSessions struct {
	ChatSessions
	events chan chat.Invalidation
}

func (s streamSessions) Subscribe(_ context.Context, assistantID, credential string) (<-chan chat.Invalidation, error) {
	if credential != "Bearer ok" {
		return nil, chat.ErrUnauthenticated
	}
	return s.events, nil
}

func TestChatController_Events(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	sessions := streamSessions{events: make(chan chat.Invalidation, 1)}
	router := gin.New()
	router.GET("/chat/:assistant/events", NewChatController(sessions).Events)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/chat/income/events")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/chat/income/events?access_token=" + "Bearer%20ok")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	sessions.events <- chat.Invalidation{UserID: "u-1", AssistantID: assistant.IDIncome}
	close(sessions.events)

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "event:") {
			events = append(events, strings.TrimSpace(strings.TrimPrefix(line, "event:")))
		}
	}
	req.Equal([]string{"ready", "invalidate"}, events)
}
