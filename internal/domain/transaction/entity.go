package transaction

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType     = errors.New("tipo de transação inválido")
	ErrInvalidAmount   = errors.New("valor da transação deve ser maior que zero")
	ErrEmptyCategory   = errors.New("categoria não pode ser vazia")
	ErrMissingDate     = errors.New("data da transação não informada")
	ErrMissingUser     = errors.New("usuário da transação não informado")
	ErrDescriptionSize = errors.New("descrição deve ter no máximo 255 caracteres")
)

// Type define se a transação é uma entrada ou uma saída
type Type string

const (
	TypeIncome  Type = "income"  // Receita
	TypeExpense Type = "expense" // Despesa
)

// Valid verifica se o tipo é conhecido
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction representa uma movimentação financeira do usuário
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewTransaction cria uma nova transação validada
func NewTransaction(userID string, t Type, amount decimal.Decimal, category, description string, occurredAt time.Time) (*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}

	now := time.Now().UTC()
	tx := &Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
	}
	if err := tx.Update(t, amount, category, description, occurredAt); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update altera os dados da transação mantendo as regras de validação
func (tx *Transaction) Update(t Type, amount decimal.Decimal, category, description string, occurredAt time.Time) error {
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)

	if !t.Valid() {
		return ErrInvalidType
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if category == "" {
		return ErrEmptyCategory
	}
	if len([]rune(description)) > 255 {
		return ErrDescriptionSize
	}
	if occurredAt.IsZero() {
		return ErrMissingDate
	}

	tx.Type = t
	tx.Amount = amount.Round(2)
	tx.Category = strings.ToLower(category)
	tx.Description = description
	tx.OccurredAt = occurredAt.UTC()
	tx.UpdatedAt = time.Now().UTC()
	return nil
}

// SignedAmount retorna o valor com sinal: positivo para receitas, negativo para despesas
func (tx *Transaction) SignedAmount() decimal.Decimal {
	if tx.Type == TypeExpense {
		return tx.Amount.Neg()
	}
	return tx.Amount
}

// CategoryTotal representa o total movimentado em uma categoria
type CategoryTotal struct {
	Category string          `json:"category"`
	Type     Type            `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

// Summary consolida um conjunto de transações
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// Summarize calcula totais por tipo e por categoria, categorias ordenadas do maior para o menor total
func Summarize(txs []*Transaction) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
		ByCategory:   []CategoryTotal{},
	}

	type key struct {
		category string
		t        Type
	}
	totals := make(map[key]decimal.Decimal)

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		default:
			continue
		}
		k := key{tx.Category, tx.Type}
		totals[k] = totals[k].Add(tx.Amount)
		s.Count++
	}

	for k, total := range totals {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: k.category, Type: k.t, Total: total})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if cmp := a.Total.Cmp(b.Total); cmp != 0 {
			return cmp > 0
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Category < b.Category
	})

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
