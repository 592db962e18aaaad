package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig contém as configurações para conexão com o PostgreSQL
type PostgresConfig struct {
	URL             string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// NewPostgresConfig cria a configuração do pool a partir da configuração da aplicação
func NewPostgresConfig(cfg *config.Config) *PostgresConfig {
	return &PostgresConfig{
		URL:             cfg.PostgresURL(),
		MaxConnections:  int32(cfg.DBMaxConnections),
		MinConnections:  int32(cfg.DBMinConnections),
		MaxConnLifetime: cfg.DBMaxLifetime,
	}
}

// PostgresDB gerencia a conexão com o PostgreSQL
type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgresDB cria uma nova conexão com o banco de dados PostgreSQL
func NewPostgresDB(ctx context.Context, cfg *PostgresConfig) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar configuração do pool: %w", err)
	}

	// Ajustar configurações do pool
	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pool de conexões: %w", err)
	}

	// Testar conexão
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao verificar conexão com o banco de dados: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Pool retorna o pool de conexões para os repositórios
func (db *PostgresDB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close fecha o pool de conexões
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

