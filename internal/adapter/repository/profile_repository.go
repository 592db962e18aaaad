package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/financas-pessoais/internal/domain/profile"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProfileRepository implementa profile.Repository usando PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository cria uma nova instância de ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) profile.Repository {
	return &ProfileRepository{
		db: db,
	}
}

// FindByUserID implementa profile.Repository.FindByUserID
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*profile.FinancialProfile, error) {
	query := `
		SELECT user_id, monthly_income::text, monthly_budget::text, savings_goal::text, currency, occupation, updated_at
		FROM financial_profiles
		WHERE user_id = $1
	`

	var (
		p                      profile.FinancialProfile
		income, budget, saving string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&income,
		&budget,
		&saving,
		&p.Currency,
		&p.Occupation,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar perfil: %w", err)
	}

	if p.MonthlyIncome, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("renda inválida no perfil: %w", err)
	}
	if p.MonthlyBudget, err = decimal.NewFromString(budget); err != nil {
		return nil, fmt.Errorf("orçamento inválido no perfil: %w", err)
	}
	if p.SavingsGoal, err = decimal.NewFromString(saving); err != nil {
		return nil, fmt.Errorf("meta de poupança inválida no perfil: %w", err)
	}

	return &p, nil
}

// Upsert implementa profile.Repository.Upsert
func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.FinancialProfile) error {
	query := `
		INSERT INTO financial_profiles (user_id, monthly_income, monthly_budget, savings_goal, currency, occupation, updated_at)
		VALUES ($1, $2::numeric, $3::numeric, $4::numeric, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_income = EXCLUDED.monthly_income,
			monthly_budget = EXCLUDED.monthly_budget,
			savings_goal = EXCLUDED.savings_goal,
			currency = EXCLUDED.currency,
			occupation = EXCLUDED.occupation,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.MonthlyIncome.StringFixed(2),
		p.MonthlyBudget.StringFixed(2),
		p.SavingsGoal.StringFixed(2),
		p.Currency,
		p.Occupation,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar perfil: %w", err)
	}

	return nil
}
