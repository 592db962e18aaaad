package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/financas-pessoais/internal/config"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Carregar configuração (.env opcional)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar aplicação
	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("erro ao inicializar aplicação: %w", err)
	}
	defer app.Close()

	app.SetupRoutes()

	// Iniciar o servidor
	if err := app.Start(ctx); err != nil {
		return err
	}

	log.Info("Aplicação encerrada")
	return nil
}
