package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound ocorre quando o usuário ainda não cadastrou seu perfil financeiro
	ErrNotFound = errors.New("perfil financeiro não encontrado")
	// ErrInvalidProfile ocorre quando algum campo do perfil é inválido
	ErrInvalidProfile = errors.New("perfil financeiro inválido")
	// ErrNegativeValue ocorre quando um valor monetário é negativo
	ErrNegativeValue = errors.New("valores monetários não podem ser negativos")
)

var validate = validator.New()

// FinancialProfile representa a situação financeira declarada pelo usuário
type FinancialProfile struct {
	UserID        string          `json:"user_id" validate:"required"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	SavingsGoal   decimal.Decimal `json:"savings_goal"`
	Currency      string          `json:"currency" validate:"required,iso4217"`
	Occupation    string          `json:"occupation" validate:"max=100"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewFinancialProfile cria um perfil validado para o usuário
func NewFinancialProfile(userID string, income, budget, savingsGoal decimal.Decimal, currency, occupation string) (*FinancialProfile, error) {
	p := &FinancialProfile{
		UserID:        userID,
		MonthlyIncome: income.Round(2),
		MonthlyBudget: budget.Round(2),
		SavingsGoal:   savingsGoal.Round(2),
		Currency:      strings.ToUpper(strings.TrimSpace(currency)),
		Occupation:    strings.TrimSpace(occupation),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate verifica as regras do perfil
func (p *FinancialProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	for _, v := range []decimal.Decimal{p.MonthlyIncome, p.MonthlyBudget, p.SavingsGoal} {
		if v.IsNegative() {
			return ErrNegativeValue
		}
	}
	return nil
}

// MonthlySurplus retorna quanto sobra da renda após o orçamento planejado
func (p *FinancialProfile) MonthlySurplus() decimal.Decimal {
	return p.MonthlyIncome.Sub(p.MonthlyBudget)
}
