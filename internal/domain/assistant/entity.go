package assistant

import (
	"errors"
	"strings"
)

// ErrUnknownAssistant ocorre quando o identificador não pertence ao conjunto de assistentes
var ErrUnknownAssistant = errors.New("assistente desconhecido")

// ID identifica um assistente de chat
type ID string

// Constantes para ID
const (
	IDIncome      ID = "income"      // Assistente de receitas
	IDExpenditure ID = "expenditure" // Assistente de despesas
)

// Persona representa a personalidade de um assistente de chat
type Persona struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"-"`
}

// String implementa fmt.Stringer
func (id ID) String() string {
	return string(id)
}

// ParseID normaliza um identificador vindo da rota e valida contra o conjunto conhecido
func ParseID(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	switch id {
	case IDIncome, IDExpenditure:
		return id, nil
	default:
		return "", ErrUnknownAssistant
	}
}
