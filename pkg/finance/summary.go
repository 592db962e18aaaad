package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/profile"
	"github.com/hugohenrick/financas-pessoais/internal/domain/transaction"
	"github.com/samber/lo"
)

const (
	// janela de transações considerada no contexto
	contextWindow          = 30 * 24 * time.Hour
	maxContextTransactions = 500
	topCategories          = 5
)

// ContextBuilder monta o resumo financeiro do usuário enviado junto ao prompt do assistente
type ContextBuilder struct {
	profiles     profile.Repository
	transactions transaction.Repository
	now          func() time.Time
}

// NewContextBuilder cria um novo ContextBuilder
func NewContextBuilder(profiles profile.Repository, transactions transaction.Repository) *ContextBuilder {
	return &ContextBuilder{
		profiles:     profiles,
		transactions: transactions,
		now:          time.Now,
	}
}

// BuildContext resume o perfil e as transações dos últimos 30 dias.
// Retorna string vazia quando o usuário ainda não tem dados.
func (b *ContextBuilder) BuildContext(ctx context.Context, userID string) (string, error) {
	p, err := b.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return "", fmt.Errorf("erro ao buscar perfil: %w", err)
	}

	from := b.now().Add(-contextWindow).UTC()
	txs, err := b.transactions.List(ctx, userID, transaction.Filter{From: &from, Limit: maxContextTransactions})
	if err != nil {
		return "", fmt.Errorf("erro ao buscar transações: %w", err)
	}

	return Describe(p, transaction.Summarize(txs)), nil
}

// Describe formata o perfil (opcional) e o resumo das transações como texto para o modelo
func Describe(p *profile.FinancialProfile, summary transaction.Summary) string {
	if p == nil && summary.Count == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Financial context shared by the user")
	if p != nil {
		fmt.Fprintf(&sb, " (amounts in %s)", p.Currency)
	}
	sb.WriteString(":\n")

	if p != nil {
		fmt.Fprintf(&sb, "- Declared monthly income: %s\n", p.MonthlyIncome.StringFixed(2))
		fmt.Fprintf(&sb, "- Planned monthly budget: %s\n", p.MonthlyBudget.StringFixed(2))
		fmt.Fprintf(&sb, "- Savings goal: %s\n", p.SavingsGoal.StringFixed(2))
		if p.Occupation != "" {
			fmt.Fprintf(&sb, "- Occupation: %s\n", p.Occupation)
		}
	}

	if summary.Count == 0 {
		sb.WriteString("- No transactions recorded in the last 30 days\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "- Last 30 days: income %s, expenses %s, balance %s across %d transactions\n",
		summary.TotalIncome.StringFixed(2),
		summary.TotalExpense.StringFixed(2),
		summary.Balance.StringFixed(2),
		summary.Count)

	top := summary.ByCategory
	if len(top) > topCategories {
		top = top[:topCategories]
	}
	categories := lo.Map(top, func(c transaction.CategoryTotal, _ int) string {
		return fmt.Sprintf("%s (%s) %s", c.Category, c.Type, c.Total.StringFixed(2))
	})
	fmt.Fprintf(&sb, "- Top categories: %s\n", strings.Join(categories, ", "))

	return sb.String()
}
