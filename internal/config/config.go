package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Backends suportados para o histórico de chat
const (
	HistoryStorePostgres = "postgres"
	HistoryStoreSQLite   = "sqlite"
	HistoryStoreMemory   = "memory"
)

var (
	// ErrInvalidHistoryStore ocorre quando HISTORY_STORE não é um backend conhecido
	ErrInvalidHistoryStore = errors.New("HISTORY_STORE inválido")
	// ErrMissingJWTSecret ocorre quando JWT_SECRET_KEY não foi configurada
	ErrMissingJWTSecret = errors.New("chave secreta JWT não configurada")
)

// Config contém todas as configurações da aplicação carregadas do ambiente
type Config struct {
	Port               int    `env:"PORT,default=8080"`
	GinMode            string `env:"GIN_MODE,default=debug"`
	BasePath           string `env:"BASE_PATH,default=/api/v1"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	DatabaseURL      string        `env:"DATABASE_URL"`
	DBHost           string        `env:"DB_HOST,default=localhost"`
	DBPort           int           `env:"DB_PORT,default=5432"`
	DBUser           string        `env:"DB_USER,default=postgres"`
	DBPassword       string        `env:"DB_PASSWORD,default=postgres"`
	DBName           string        `env:"DB_NAME,default=financas"`
	DBSSLMode        string        `env:"DB_SSL_MODE,default=disable"`
	DBMaxConnections int           `env:"DB_MAX_CONNECTIONS,default=10"`
	DBMinConnections int           `env:"DB_MIN_CONNECTIONS,default=1"`
	DBMaxLifetime    time.Duration `env:"DB_MAX_LIFETIME,default=1h"`
	MigrateOnStart   bool          `env:"MIGRATE_ON_START,default=false"`

	HistoryStore string `env:"HISTORY_STORE,default=postgres"`
	SQLitePath   string `env:"SQLITE_PATH,default=data/chat.db"`

	JWTSecretKey  string        `env:"JWT_SECRET_KEY"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION,default=24h"`

	AnthropicAPIKey   string        `env:"ANTHROPIC_API_KEY"`
	AnthropicModel    string        `env:"ANTHROPIC_MODEL,default=claude-3-sonnet-20240229"`
	AnthropicMaxToken int           `env:"ANTHROPIC_MAX_TOKENS,default=1000"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT,default=30s"`
	MaxMessageLength  int           `env:"MAX_MESSAGE_LENGTH,default=4000"`
}

// Load carrega o arquivo .env (se existir) e popula a configuração a partir do ambiente
func Load() (*Config, error) {
	// O .env é opcional, em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("erro ao ler configuração: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate verifica combinações de valores que as tags não conseguem expressar
func (c *Config) Validate() error {
	switch c.HistoryStore {
	case HistoryStorePostgres, HistoryStoreSQLite, HistoryStoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHistoryStore, c.HistoryStore)
	}

	if c.JWTSecretKey == "" {
		return ErrMissingJWTSecret
	}

	return nil
}

// PostgresURL retorna DATABASE_URL ou monta a URL a partir das variáveis DB_*
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// AllowedOrigins retorna a lista de origens do CORS
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Address retorna o endereço de escuta do servidor HTTP
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
