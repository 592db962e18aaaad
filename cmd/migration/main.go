package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	env "github.com/Netflix/go-env"
	"github.com/hugohenrick/financas-pessoais/internal/infrastructure/database"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/joho/godotenv"
)

// migrationConfig contém apenas o necessário para conectar ao banco
type migrationConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST,default=localhost"`
	DBPort      int    `env:"DB_PORT,default=5432"`
	DBUser      string `env:"DB_USER,default=postgres"`
	DBPassword  string `env:"DB_PASSWORD,default=postgres"`
	DBName      string `env:"DB_NAME,default=financas"`
	DBSSLMode   string `env:"DB_SSL_MODE,default=disable"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

func (c migrationConfig) url() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func main() {
	command := flag.String("command", "up", "up, down ou version")
	steps := flag.Int("steps", 1, "Número de migrações desfeitas pelo comando down")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	var cfg migrationConfig
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		log.Fatalf("Erro ao ler configuração: %v", err)
	}
	logg := logger.NewLogger(cfg.LogLevel)

	switch *command {
	case "up":
		if err := database.RunMigrations(cfg.url(), logg); err != nil {
			log.Fatalf("Erro ao executar migrações: %v", err)
		}
	case "down":
		if err := database.RollbackMigrations(cfg.url(), *steps, logg); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
	case "version":
		version, dirty, err := database.MigrationVersion(cfg.url())
		if err != nil {
			log.Fatalf("Erro ao consultar versão: %v", err)
		}
		fmt.Printf("versão: %d (dirty: %t)\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconhecido: %s\n", *command)
		flag.Usage()
		os.Exit(2)
	}
}
