package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationFiles retorna o sistema de arquivos com as migrações embutidas
func MigrationFiles() embed.FS {
	return migrationsFS
}

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao ler migrações embutidas: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return m, nil
}

// RunMigrations aplica todas as migrações pendentes
func RunMigrations(dbURL string, log logger.Logger) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Nenhuma migração pendente")
			return nil
		}
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("Migrações aplicadas com sucesso", "version", version, "dirty", dirty)
	return nil
}

// RollbackMigrations desfaz as últimas n migrações aplicadas
func RollbackMigrations(dbURL string, steps int, log logger.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("número de passos inválido: %d", steps)
	}

	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao desfazer migrações: %w", err)
	}

	log.Info("Migrações desfeitas", "steps", steps)
	return nil
}

// MigrationVersion retorna a versão atual do schema
func MigrationVersion(dbURL string) (uint, bool, error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
