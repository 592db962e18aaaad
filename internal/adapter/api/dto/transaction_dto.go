package dto

import (
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/transaction"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TransactionRequest representa os dados de uma transação para criação ou atualização
type TransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"150.75"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	OccurredAt  time.Time       `json:"occurred_at" binding:"required"`
}

// TransactionResponse representa a resposta com dados de uma transação
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"150.75"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionQuery representa os filtros de listagem de transações
type TransactionQuery struct {
	Type     string     `form:"type" binding:"omitempty,oneof=income expense"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// ToFilter converte a consulta em filtro do repositório
func (q TransactionQuery) ToFilter(p Pagination) transaction.Filter {
	filter := transaction.Filter{
		Type:   transaction.Type(q.Type),
		From:   q.From,
		Limit:  p.PageSize,
		Offset: p.Offset(),
	}
	if q.To != nil {
		// inclui o dia inteiro informado
		end := q.To.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter
}

// ToTransactionResponse converte uma transação do domínio para DTO
func ToTransactionResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		OccurredAt:  tx.OccurredAt,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// ToTransactionListResponse converte uma página de transações para DTO
func ToTransactionListResponse(txs []*transaction.Transaction, totalCount int, p Pagination) PageResponse {
	data := lo.Map(txs, func(tx *transaction.Transaction, _ int) TransactionResponse {
		return ToTransactionResponse(tx)
	})
	return NewPageResponse(data, totalCount, p)
}
