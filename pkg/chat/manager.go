package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	domainchat "github.com/hugohenrick/financas-pessoais/internal/domain/chat"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/llm"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
	"github.com/samber/lo"
)

const (
	defaultMaxMessageLength = 4000
	// turnos mais recentes enviados ao modelo
	maxPromptTurns = 40
)

// PromptContext fornece dados financeiros do usuário para complementar o prompt do assistente
type PromptContext interface {
	BuildContext(ctx context.Context, userID string) (string, error)
}

// SessionManagerConfig reúne as dependências do SessionManager
type SessionManagerConfig struct {
	Resolver         auth.IdentityResolver
	Registry         *assistant.Registry
	Store            domainchat.Repository
	Broadcaster      *Broadcaster
	Invalidator      ViewInvalidator
	Completer        llm.Completer
	PromptContext    PromptContext
	Logger           logger.Logger
	MaxMessageLength int
}

// Reply contém os dois turnos gravados por SendMessage
type Reply struct {
	UserMessage      domainchat.Message `json:"user_message"`
	AssistantMessage domainchat.Message `json:"assistant_message"`
}

// SessionManager orquestra identidade, catálogo de assistentes e histórico de chat.
// O userID de toda operação no armazenamento vem sempre do principal resolvido.
type SessionManager struct {
	resolver         auth.IdentityResolver
	registry         *assistant.Registry
	store            domainchat.Repository
	broadcaster      *Broadcaster
	invalidator      ViewInvalidator
	completer        llm.Completer
	promptContext    PromptContext
	logger           logger.Logger
	maxMessageLength int
	now              func() time.Time
}

// NewSessionManager cria um novo SessionManager
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	m := &SessionManager{
		resolver:         cfg.Resolver,
		registry:         cfg.Registry,
		store:            cfg.Store,
		broadcaster:      cfg.Broadcaster,
		invalidator:      cfg.Invalidator,
		completer:        cfg.Completer,
		promptContext:    cfg.PromptContext,
		logger:           cfg.Logger,
		maxMessageLength: cfg.MaxMessageLength,
		now:              time.Now,
	}
	if m.registry == nil {
		m.registry = assistant.Default()
	}
	if m.broadcaster == nil {
		m.broadcaster = NewBroadcaster()
	}
	if m.invalidator == nil {
		m.invalidator = m.broadcaster
	}
	if m.logger == nil {
		m.logger = logger.NewNopLogger()
	}
	if m.maxMessageLength <= 0 {
		m.maxMessageLength = defaultMaxMessageLength
	}
	return m
}

// Assistants retorna o catálogo de assistentes
func (m *SessionManager) Assistants() []assistant.Persona {
	return m.registry.List()
}

// authorize resolve o principal e valida o assistente, nessa ordem, sem tocar no armazenamento
func (m *SessionManager) authorize(ctx context.Context, rawAssistantID, credential string) (*auth.Principal, assistant.Persona, error) {
	principal, err := m.resolver.ResolveCurrentPrincipal(ctx, credential)
	if err != nil || principal == nil || !principal.IsAuthenticated || principal.UserID == "" {
		return nil, assistant.Persona{}, ErrUnauthenticated
	}

	persona, err := m.registry.Lookup(rawAssistantID)
	if err != nil {
		return nil, assistant.Persona{}, ErrUnknownAssistant
	}

	return principal, persona, nil
}

// ClearHistory remove todo o histórico do usuário autenticado com o assistente.
// Remover zero mensagens é sucesso. A atomicidade é a do DELETE do armazenamento.
func (m *SessionManager) ClearHistory(ctx context.Context, assistantID, credential string) error {
	principal, persona, err := m.authorize(ctx, assistantID, credential)
	if err != nil {
		return err
	}

	removed, err := m.store.DeleteMessages(ctx, principal.UserID, persona.ID)
	if err != nil {
		m.logger.Error("Erro ao limpar histórico de chat",
			"error", err,
			"user_id", principal.UserID,
			"assistant_id", persona.ID)
		return ErrStorageFailure
	}

	m.logger.Info("Histórico de chat removido",
		"user_id", principal.UserID,
		"assistant_id", persona.ID,
		"removed", removed)

	m.invalidator.Invalidate(principal.UserID, persona.ID)
	return nil
}

// ExportHistory retorna o histórico do usuário autenticado com o assistente, do mais antigo ao mais recente
func (m *SessionManager) ExportHistory(ctx context.Context, assistantID, credential string) ([]domainchat.Message, error) {
	principal, persona, err := m.authorize(ctx, assistantID, credential)
	if err != nil {
		return nil, err
	}

	messages, err := m.store.ListMessages(ctx, principal.UserID, persona.ID)
	if err != nil {
		m.logger.Error("Erro ao carregar histórico de chat",
			"error", err,
			"user_id", principal.UserID,
			"assistant_id", persona.ID)
		return nil, ErrStorageFailure
	}

	if messages == nil {
		messages = []domainchat.Message{}
	}
	return messages, nil
}

// SendMessage grava a mensagem do usuário, obtém a resposta do assistente e grava a resposta.
// Se o modelo falhar a mensagem do usuário permanece no histórico.
func (m *SessionManager) SendMessage(ctx context.Context, assistantID, credential, content string) (*Reply, error) {
	principal, persona, err := m.authorize(ctx, assistantID, credential)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidMessage)
	}
	if utf8.RuneCountInString(content) > m.maxMessageLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalidMessage, m.maxMessageLength)
	}

	if m.completer == nil {
		m.logger.Warn("Nenhum modelo configurado para responder mensagens",
			"assistant_id", persona.ID)
		return nil, ErrCompletionFailure
	}

	userMessage, err := domainchat.NewMessage(principal.UserID, persona.ID, domainchat.RoleUser, content, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := m.save(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := m.store.ListMessages(ctx, principal.UserID, persona.ID)
	if err != nil {
		m.logger.Error("Erro ao carregar histórico de chat",
			"error", err,
			"user_id", principal.UserID,
			"assistant_id", persona.ID)
		m.invalidator.Invalidate(principal.UserID, persona.ID)
		return nil, ErrStorageFailure
	}

	answer, err := m.completer.Complete(ctx, llm.CompletionRequest{
		System:   m.systemPrompt(ctx, principal.UserID, persona),
		Messages: promptMessages(history),
	})
	if err != nil {
		m.logger.Error("Erro ao gerar resposta do assistente",
			"error", err,
			"user_id", principal.UserID,
			"assistant_id", persona.ID)
		m.invalidator.Invalidate(principal.UserID, persona.ID)
		return nil, ErrCompletionFailure
	}

	answeredAt := m.now()
	if !answeredAt.After(userMessage.CreatedAt) {
		answeredAt = userMessage.CreatedAt.Add(time.Microsecond)
	}
	assistantMessage, err := domainchat.NewMessage(principal.UserID, persona.ID, domainchat.RoleAssistant, answer, answeredAt)
	if err != nil {
		m.logger.Error("Resposta do assistente inválida",
			"error", err,
			"assistant_id", persona.ID)
		m.invalidator.Invalidate(principal.UserID, persona.ID)
		return nil, ErrCompletionFailure
	}
	if err := m.save(ctx, assistantMessage); err != nil {
		m.invalidator.Invalidate(principal.UserID, persona.ID)
		return nil, err
	}

	m.invalidator.Invalidate(principal.UserID, persona.ID)
	return &Reply{UserMessage: *userMessage, AssistantMessage: *assistantMessage}, nil
}

// Subscribe devolve um canal de invalidações do histórico do usuário autenticado com o assistente.
// O canal é fechado quando o contexto é cancelado.
func (m *SessionManager) Subscribe(ctx context.Context, assistantID, credential string) (<-chan Invalidation, error) {
	principal, persona, err := m.authorize(ctx, assistantID, credential)
	if err != nil {
		return nil, err
	}
	return m.broadcaster.Subscribe(ctx, principal.UserID, persona.ID), nil
}

func (m *SessionManager) save(ctx context.Context, message *domainchat.Message) error {
	if err := m.store.SaveMessage(ctx, message); err != nil {
		m.logger.Error("Erro ao salvar mensagem de chat",
			"error", err,
			"user_id", message.UserID,
			"assistant_id", message.AssistantID,
			"role", message.Role)
		return ErrStorageFailure
	}
	return nil
}

func (m *SessionManager) systemPrompt(ctx context.Context, userID string, persona assistant.Persona) string {
	if m.promptContext == nil {
		return persona.SystemPrompt
	}

	financial, err := m.promptContext.BuildContext(ctx, userID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.logger.Warn("Contexto financeiro indisponível",
				"error", err,
				"user_id", userID)
		}
		return persona.SystemPrompt
	}
	if financial == "" {
		return persona.SystemPrompt
	}
	return persona.SystemPrompt + "\n\n" + financial
}

// promptMessages converte o histórico nos turnos enviados ao modelo.
// A conversa enviada sempre começa por um turno do usuário.
func promptMessages(history []domainchat.Message) []llm.Message {
	if len(history) > maxPromptTurns {
		history = history[len(history)-maxPromptTurns:]
	}
	history = lo.DropWhile(history, func(msg domainchat.Message) bool {
		return msg.Role != domainchat.RoleUser
	})

	return lo.Map(history, func(msg domainchat.Message, _ int) llm.Message {
		return llm.Message{Role: string(msg.Role), Content: msg.Content}
	})
}
