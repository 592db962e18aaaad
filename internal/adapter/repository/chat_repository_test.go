package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/internal/infrastructure/database"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// chatRepositoryFixture cria um repositório vazio e dois usuários já existentes
type chatRepositoryFixture func(t *testing.T) (repo chat.Repository, userA, userB string)

func testChatRepository(t *testing.T, fixture chatRepositoryFixture) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	save := func(t *testing.T, repo chat.Repository, userID string, id assistant.ID, role chat.Role, content string, at time.Time) {
		t.Helper()
		msg, err := chat.NewMessage(userID, id, role, content, at)
		require.NoError(t, err)
		require.NoError(t, repo.SaveMessage(context.Background(), msg))
	}

	t.Run("lista em ordem cronológica", func(t *testing.T) {
		req := require.New(t)
		repo, userA, _ := fixture(t)
		ctx := context.Background()

		save(t, repo, userA, assistant.IDIncome, chat.RoleAssistant, "terceira", base.Add(2*time.Second))
		save(t, repo, userA, assistant.IDIncome, chat.RoleUser, "primeira", base)
		save(t, repo, userA, assistant.IDIncome, chat.RoleAssistant, "segunda", base.Add(time.Millisecond))

		messages, err := repo.ListMessages(ctx, userA, assistant.IDIncome)
		req.NoError(err)
		req.Len(messages, 3)
		req.Equal("primeira", messages[0].Content)
		req.Equal("segunda", messages[1].Content)
		req.Equal("terceira", messages[2].Content)
		for _, m := range messages {
			req.Equal(userA, m.UserID)
			req.Equal(assistant.IDIncome, m.AssistantID)
		}
		req.True(messages[1].CreatedAt.Equal(base.Add(time.Millisecond)))
	})

	t.Run("histórico vazio não é nil", func(t *testing.T) {
		repo, userA, _ := fixture(t)

		messages, err := repo.ListMessages(context.Background(), userA, assistant.IDExpenditure)
		require.NoError(t, err)
		require.NotNil(t, messages)
		require.Empty(t, messages)
	})

	t.Run("isola usuários e assistentes", func(t *testing.T) {
		req := require.New(t)
		repo, userA, userB := fixture(t)
		ctx := context.Background()

		save(t, repo, userA, assistant.IDIncome, chat.RoleUser, "a-income", base)
		save(t, repo, userA, assistant.IDExpenditure, chat.RoleUser, "a-expenditure", base)
		save(t, repo, userB, assistant.IDIncome, chat.RoleUser, "b-income", base)

		messages, err := repo.ListMessages(ctx, userB, assistant.IDIncome)
		req.NoError(err)
		req.Len(messages, 1)
		req.Equal("b-income", messages[0].Content)

		count, err := repo.CountMessages(ctx, userA, assistant.IDIncome)
		req.NoError(err)
		req.Equal(1, count)
	})

	t.Run("remove apenas o par informado", func(t *testing.T) {
		req := require.New(t)
		repo, userA, userB := fixture(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			save(t, repo, userA, assistant.IDIncome, chat.RoleUser, "income", base.Add(time.Duration(i)*time.Second))
		}
		save(t, repo, userA, assistant.IDExpenditure, chat.RoleUser, "expenditure", base)
		save(t, repo, userB, assistant.IDIncome, chat.RoleUser, "outro usuário", base)

		removed, err := repo.DeleteMessages(ctx, userA, assistant.IDIncome)
		req.NoError(err)
		req.EqualValues(3, removed)

		removed, err = repo.DeleteMessages(ctx, userA, assistant.IDIncome)
		req.NoError(err)
		req.Zero(removed)

		count, err := repo.CountMessages(ctx, userA, assistant.IDExpenditure)
		req.NoError(err)
		req.Equal(1, count)

		count, err = repo.CountMessages(ctx, userB, assistant.IDIncome)
		req.NoError(err)
		req.Equal(1, count)
	})
}

func TestMemoryChatRepository(t *testing.T) {
	testChatRepository(t, func(t *testing.T) (chat.Repository, string, string) {
		return NewMemoryChatRepository(), "user-a", "user-b"
	})
}

func TestMemoryChatRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryChatRepository().ListMessages(ctx, "user-a", assistant.IDIncome)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteChatRepository(t *testing.T) {
	testChatRepository(t, func(t *testing.T) (chat.Repository, string, string) {
		db, err := database.OpenSQLite(t.TempDir() + "/chat.db")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		repo, err := NewSQLiteChatRepository(context.Background(), db)
		require.NoError(t, err)
		return repo, "user-a", "user-b"
	})
}

func TestPostgresChatRepository(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}
	require.NoError(t, database.RunMigrations(dbURL, logger.NewNopLogger()))

	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	users := NewUserRepository(pool)
	newUser := func(t *testing.T) string {
		u, err := user.NewUser("Teste", uuid.New().String()+"@example.com", "senha-segura")
		require.NoError(t, err)
		require.NoError(t, users.Create(context.Background(), u))
		t.Cleanup(func() {
			_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
		})
		return u.ID
	}

	testChatRepository(t, func(t *testing.T) (chat.Repository, string, string) {
		return NewPostgresChatRepository(pool), newUser(t), newUser(t)
	})
}
