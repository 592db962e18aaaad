package dto

import (
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/profile"
	"github.com/shopspring/decimal"
)

// ProfileRequest representa os dados do perfil financeiro enviados pelo usuário
type ProfileRequest struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income" swaggertype:"string" example:"5000.00"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget" swaggertype:"string" example:"3500.00"`
	SavingsGoal   decimal.Decimal `json:"savings_goal" swaggertype:"string" example:"800.00"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Occupation    string          `json:"occupation" binding:"max=100"`
}

// ProfileResponse representa o perfil financeiro do usuário
type ProfileResponse struct {
	MonthlyIncome  decimal.Decimal `json:"monthly_income" swaggertype:"string"`
	MonthlyBudget  decimal.Decimal `json:"monthly_budget" swaggertype:"string"`
	SavingsGoal    decimal.Decimal `json:"savings_goal" swaggertype:"string"`
	MonthlySurplus decimal.Decimal `json:"monthly_surplus" swaggertype:"string"`
	Currency       string          `json:"currency"`
	Occupation     string          `json:"occupation,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProfileResponse converte o perfil do domínio para DTO
func ToProfileResponse(p *profile.FinancialProfile) ProfileResponse {
	return ProfileResponse{
		MonthlyIncome:  p.MonthlyIncome,
		MonthlyBudget:  p.MonthlyBudget,
		SavingsGoal:    p.SavingsGoal,
		MonthlySurplus: p.MonthlySurplus(),
		Currency:       p.Currency,
		Occupation:     p.Occupation,
		UpdatedAt:      p.UpdatedAt,
	}
}
