package dto

import (
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/samber/lo"
)

// AssistantResponse representa um assistente disponível, sem o prompt de sistema
type AssistantResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToAssistantResponse converte uma persona para DTO
func ToAssistantResponse(p assistant.Persona) AssistantResponse {
	return AssistantResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
	}
}

// ToAssistantListResponse converte o catálogo para DTO
func ToAssistantListResponse(personas []assistant.Persona) []AssistantResponse {
	return lo.Map(personas, func(p assistant.Persona, _ int) AssistantResponse { return ToAssistantResponse(p) })
}
