package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/financas-pessoais/docs"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/controller"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/route"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/repository"
	"github.com/hugohenrick/financas-pessoais/internal/config"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	domainchat "github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/hugohenrick/financas-pessoais/internal/infrastructure/database"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/chat"
	"github.com/hugohenrick/financas-pessoais/pkg/finance"
	"github.com/hugohenrick/financas-pessoais/pkg/llm"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

// App representa a aplicação e suas dependências
type App struct {
	config   *config.Config
	logger   logger.Logger
	router   *gin.Engine
	server   *http.Server
	db       *database.PostgresDB
	sqliteDB *sql.DB

	authController        *controller.AuthController
	userController        *controller.UserController
	chatController        *controller.ChatController
	assistantController   *controller.AssistantController
	transactionController *controller.TransactionController
	profileController     *controller.ProfileController
	tokens                *auth.JWTService
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	// Migrações antes de abrir o pool
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.PostgresURL(), log); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresDB(ctx, database.NewPostgresConfig(cfg))
	if err != nil {
		return nil, err
	}
	app.db = db

	// Criar repositórios
	userRepo := repository.NewUserRepository(db.Pool())
	transactionRepo := repository.NewTransactionRepository(db.Pool())
	profileRepo := repository.NewProfileRepository(db.Pool())

	chatStore, err := app.newChatStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	tokens, err := auth.NewJWTService(cfg.JWTSecretKey, cfg.JWTExpiration)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.tokens = tokens

	// Sem chave da Anthropic o envio de mensagens responde 502, o histórico continua disponível
	var completer llm.Completer
	anthropic, err := llm.NewAnthropicClient(llm.AnthropicConfig{
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		MaxTokens: cfg.AnthropicMaxToken,
		Timeout:   cfg.CompletionTimeout,
	}, log)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		log.Warn("ANTHROPIC_API_KEY não configurada, assistentes não responderão mensagens")
	case err != nil:
		app.Close()
		return nil, err
	default:
		completer = anthropic
	}

	registry := assistant.Default()
	manager := chat.NewSessionManager(chat.SessionManagerConfig{
		Resolver:         tokens,
		Registry:         registry,
		Store:            chatStore,
		Completer:        completer,
		PromptContext:    finance.NewContextBuilder(profileRepo, transactionRepo),
		Logger:           log,
		MaxMessageLength: cfg.MaxMessageLength,
	})

	// Criar controllers
	app.authController = controller.NewAuthController(userRepo, tokens, log)
	app.userController = controller.NewUserController(userRepo, log)
	app.chatController = controller.NewChatController(manager)
	app.assistantController = controller.NewAssistantController(registry)
	app.transactionController = controller.NewTransactionController(transactionRepo, log)
	app.profileController = controller.NewProfileController(profileRepo, log)

	gin.SetMode(cfg.GinMode)
	app.router = gin.New()
	app.router.Use(gin.Logger(), gin.Recovery())
	app.router.Use(cors.New(app.corsConfig()))

	return app, nil
}

// newChatStore escolhe o backend do histórico conforme HISTORY_STORE
func (a *App) newChatStore(ctx context.Context) (domainchat.Repository, error) {
	switch a.config.HistoryStore {
	case config.HistoryStoreSQLite:
		db, err := database.OpenSQLite(a.config.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqliteDB = db
		a.logger.Info("Histórico de chat em SQLite", "path", a.config.SQLitePath)
		return repository.NewSQLiteChatRepository(ctx, db)
	case config.HistoryStoreMemory:
		a.logger.Warn("Histórico de chat em memória, os dados serão perdidos ao reiniciar")
		return repository.NewMemoryChatRepository(), nil
	default:
		return repository.NewPostgresChatRepository(a.db.Pool()), nil
	}
}

func (a *App) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	origins := a.config.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AddAllowHeaders("Authorization")
	return corsConfig
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := a.router.Group(a.config.BasePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
		})
	})

	route.SetupAuthRoutes(api, a.authController, a.tokens)
	route.SetupUserRoutes(api, a.userController, a.tokens)
	route.SetupAssistantRoutes(api, a.assistantController)
	route.SetupChatRoutes(api, a.chatController)
	route.SetupTransactionRoutes(api, a.transactionController, a.tokens)
	route.SetupProfileRoutes(api, a.profileController, a.tokens)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Start inicia o servidor HTTP e bloqueia até o contexto ser cancelado
func (a *App) Start(ctx context.Context) error {
	a.server = &http.Server{
		Addr:              a.config.Address(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Servidor HTTP iniciado", "address", a.server.Addr, "base_path", a.config.BasePath)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("erro no servidor HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Encerrando servidor...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.sqliteDB != nil {
		_ = a.sqliteDB.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
