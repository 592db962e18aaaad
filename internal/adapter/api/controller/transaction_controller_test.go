package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/profile"
	"github.com/hugohenrick/financas-pessoais/internal/domain/transaction"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memoryTransactions é um transaction.Repository em memória para os testes
type memoryTransactions struct {
	mu  sync.Mutex
	txs map[string]*transaction.Transaction
}

func newMemoryTransactions() *memoryTransactions {
	return &memoryTransactions{txs: map[string]*transaction.Transaction{}}
}

func (m *memoryTransactions) Create(_ context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[tx.ID] = tx
	return nil
}

func (m *memoryTransactions) FindByID(_ context.Context, userID, id string) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok || tx.UserID != userID {
		return nil, transaction.ErrNotFound
	}
	return tx, nil
}

func (m *memoryTransactions) matching(userID string, f transaction.Filter) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, tx := range m.txs {
		if tx.UserID != userID || (f.Type != "" && tx.Type != f.Type) {
			continue
		}
		if (f.From != nil && tx.OccurredAt.Before(*f.From)) || (f.To != nil && tx.OccurredAt.After(*f.To)) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

func (m *memoryTransactions) List(_ context.Context, userID string, f transaction.Filter) ([]*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.matching(userID, f)
	if f.Offset >= len(out) {
		return []*transaction.Transaction{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memoryTransactions) Count(_ context.Context, userID string, f transaction.Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(userID, f)), nil
}

func (m *memoryTransactions) Update(_ context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.txs[tx.ID]; !ok || existing.UserID != tx.UserID {
		return transaction.ErrNotFound
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *memoryTransactions) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.txs[id]; !ok || tx.UserID != userID {
		return transaction.ErrNotFound
	}
	delete(m.txs, id)
	return nil
}

type memoryProfiles struct {
	profiles map[string]*profile.FinancialProfile
}

func (m *memoryProfiles) FindByUserID(_ context.Context, userID string) (*profile.FinancialProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

func (m *memoryProfiles) Upsert(_ context.Context, p *profile.FinancialProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

type financeFixture struct {
	router *gin.Engine
	tokens *auth.JWTService
}

func newFinanceFixture(t *testing.T) financeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	tc := NewTransactionController(newMemoryTransactions(), logger.NewNopLogger())
	pc := NewProfileController(&memoryProfiles{profiles: map[string]*profile.FinancialProfile{}}, logger.NewNopLogger())

	router := gin.New()
	group := router.Group("", auth.JWTAuthMiddleware(tokens))
	group.POST("/transactions", tc.Create)
	group.GET("/transactions", tc.List)
	group.GET("/transactions/summary", tc.Summary)
	group.GET("/transactions/:id", tc.Get)
	group.PUT("/transactions/:id", tc.Update)
	group.DELETE("/transactions/:id", tc.Delete)
	group.GET("/profile", pc.Get)
	group.PUT("/profile", pc.Put)

	return financeFixture{router: router, tokens: tokens}
}

func (f financeFixture) do(t *testing.T, userID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := f.tokens.GenerateToken(&user.User{ID: userID, Role: user.RoleMember})
	require.NoError(t, err)

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func TestTransactionController_CRUD(t *testing.T) {
	req := require.New(t)
	f := newFinanceFixture(t)

	w := f.do(t, "u-1", http.MethodPost, "/transactions",
		`{"type":"expense","amount":"150.755","category":"Mercado","description":"feira","occurred_at":"2026-03-10T10:00:00Z"}`)
	req.Equal(http.StatusCreated, w.Code)

	var created struct {
		Data dto.TransactionResponse `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	req.True(decimal.RequireFromString("150.76").Equal(created.Data.Amount))
	req.Equal("mercado", created.Data.Category)

	path := "/transactions/" + created.Data.ID
	req.Equal(http.StatusNotFound, f.do(t, "u-2", http.MethodGet, path, "").Code)
	req.Equal(http.StatusNotFound, f.do(t, "u-2", http.MethodDelete, path, "").Code)
	req.Equal(http.StatusOK, f.do(t, "u-1", http.MethodGet, path, "").Code)

	w = f.do(t, "u-1", http.MethodPut, path,
		`{"type":"expense","amount":"-1","category":"mercado","occurred_at":"2026-03-10T10:00:00Z"}`)
	req.Equal(http.StatusBadRequest, w.Code)

	w = f.do(t, "u-1", http.MethodPut, path,
		`{"type":"expense","amount":"99.90","category":"farmácia","occurred_at":"2026-03-11T10:00:00Z"}`)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), `"category":"farmácia"`)

	req.Equal(http.StatusOK, f.do(t, "u-1", http.MethodDelete, path, "").Code)
	req.Equal(http.StatusNotFound, f.do(t, "u-1", http.MethodGet, path, "").Code)
}

func TestTransactionController_ListAndSummary(t *testing.T) {
	req := require.New(t)
	f := newFinanceFixture(t)

	for _, body := range []string{
		`{"type":"income","amount":"5000","category":"salário","occurred_at":"2026-04-05T09:00:00Z"}`,
		`{"type":"expense","amount":"1200","category":"aluguel","occurred_at":"2026-04-10T09:00:00Z"}`,
		`{"type":"expense","amount":"300","category":"mercado","occurred_at":"2026-05-02T09:00:00Z"}`,
	} {
		req.Equal(http.StatusCreated, f.do(t, "u-1", http.MethodPost, "/transactions", body).Code)
	}
	req.Equal(http.StatusCreated, f.do(t, "u-2", http.MethodPost, "/transactions",
		`{"type":"expense","amount":"10","category":"outro","occurred_at":"2026-04-10T09:00:00Z"}`).Code)

	w := f.do(t, "u-1", http.MethodGet, "/transactions?type=expense&page_size=1", "")
	req.Equal(http.StatusOK, w.Code)
	var page struct {
		Data struct {
			Items      []dto.TransactionResponse `json:"items"`
			TotalCount int                       `json:"total_count"`
		} `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &page))
	req.Len(page.Data.Items, 1)
	req.Equal(2, page.Data.TotalCount)
	req.Equal("mercado", page.Data.Items[0].Category)

	w = f.do(t, "u-1", http.MethodGet, "/transactions/summary?from=2026-04-01&to=2026-04-30", "")
	req.Equal(http.StatusOK, w.Code)
	var summary struct {
		Data transaction.Summary `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	req.Equal(2, summary.Data.Count)
	req.True(decimal.NewFromInt(3800).Equal(summary.Data.Balance))

	req.Equal(http.StatusBadRequest, f.do(t, "u-1", http.MethodGet, "/transactions?type=invalid", "").Code)
}

func TestProfileController(t *testing.T) {
	req := require.New(t)
	f := newFinanceFixture(t)

	req.Equal(http.StatusNotFound, f.do(t, "u-1", http.MethodGet, "/profile", "").Code)

	w := f.do(t, "u-1", http.MethodPut, "/profile",
		`{"monthly_income":"5000","monthly_budget":"3200.5","savings_goal":"700","currency":"XYZ"}`)
	req.Equal(http.StatusBadRequest, w.Code)

	w = f.do(t, "u-1", http.MethodPut, "/profile",
		`{"monthly_income":"5000","monthly_budget":"3200.5","savings_goal":"700","currency":"brl","occupation":"Professora"}`)
	req.Equal(http.StatusOK, w.Code)

	w = f.do(t, "u-1", http.MethodGet, "/profile", "")
	req.Equal(http.StatusOK, w.Code)
	var result struct {
		Data dto.ProfileResponse `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	req.Equal("BRL", result.Data.Currency)
	req.True(decimal.RequireFromString("1799.5").Equal(result.Data.MonthlySurplus))

	req.Equal(http.StatusNotFound, f.do(t, "u-2", http.MethodGet, "/profile", "").Code)
}

func TestTransactionController_RequiresAuthentication(t *testing.T) {
	f := newFinanceFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Not authenticated"}`, w.Body.String())
}
