package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

const (
	anthropicAPIEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	defaultModel         = "claude-3-sonnet-20240229"
	defaultMaxTokens     = 1000
)

var (
	// ErrMissingAPIKey ocorre quando o cliente é criado sem chave de API
	ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY não configurada")
	// ErrEmptyCompletion ocorre quando a API responde sem nenhum bloco de texto
	ErrEmptyCompletion = errors.New("resposta vazia do modelo")
)

// Message representa um turno enviado ao modelo
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest reúne o prompt de sistema e a conversa em ordem cronológica
type CompletionRequest struct {
	System   string
	Messages []Message
}

// Completer gera a próxima resposta do assistente
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// AnthropicConfig contém as configurações do cliente da API da Anthropic
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	Endpoint  string
}

// AnthropicClient implementa Completer usando a Messages API da Anthropic
type AnthropicClient struct {
	config AnthropicConfig
	client *http.Client
	logger logger.Logger
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
	System    string    `json:"system,omitempty"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicClient cria um novo cliente da API da Anthropic
func NewAnthropicClient(config AnthropicConfig, log logger.Logger) (*AnthropicClient, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Endpoint == "" {
		config.Endpoint = anthropicAPIEndpoint
	}

	return &AnthropicClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log,
	}, nil
}

// Complete envia a conversa para a API e devolve o texto gerado
func (a *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	reqBody := messageRequest{
		Model:     a.config.Model,
		MaxTokens: a.config.MaxTokens,
		Messages:  req.Messages,
		System:    req.System,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("erro ao criar requisição HTTP: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-API-Key", a.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	a.logger.Debug("Enviando requisição para API Anthropic",
		"model", reqBody.Model,
		"num_messages", len(reqBody.Messages))

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("erro na comunicação com a API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("API Anthropic retornou erro",
			"status", resp.StatusCode,
			"body", string(respBody))
		return "", fmt.Errorf("erro na API (código %d)", resp.StatusCode)
	}

	var apiResp messageResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	var text strings.Builder
	for _, content := range apiResp.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyCompletion
	}

	a.logger.Info("Resposta gerada com sucesso",
		"model", apiResp.Model,
		"input_tokens", apiResp.Usage.InputTokens,
		"output_tokens", apiResp.Usage.OutputTokens,
		"stop_reason", apiResp.StopReason)

	return text.String(), nil
}
