package chat

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
)

// Invalidation avisa que o histórico em cache de um par (usuário, assistente) ficou desatualizado
type Invalidation struct {
	UserID      string       `json:"user_id"`
	AssistantID assistant.ID `json:"assistant_id"`
	At          time.Time    `json:"at"`
}

// ViewInvalidator recebe os avisos de histórico desatualizado
type ViewInvalidator interface {
	Invalidate(userID string, assistantID assistant.ID)
}

type subscriptionKey struct {
	userID      string
	assistantID assistant.ID
}

// Broadcaster distribui invalidações para os assinantes de cada par (usuário, assistente).
// O envio nunca bloqueia: um assinante com o buffer cheio já tem um aviso pendente.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[subscriptionKey]map[chan Invalidation]struct{}
	now         func() time.Time
}

var _ ViewInvalidator = (*Broadcaster)(nil)

// NewBroadcaster cria um Broadcaster sem assinantes
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[subscriptionKey]map[chan Invalidation]struct{}),
		now:         time.Now,
	}
}

// Subscribe registra um assinante até o cancelamento do contexto, quando o canal é fechado
func (b *Broadcaster) Subscribe(ctx context.Context, userID string, assistantID assistant.ID) <-chan Invalidation {
	ch := make(chan Invalidation, 1)
	key := subscriptionKey{userID, assistantID}

	b.mu.Lock()
	if b.subscribers[key] == nil {
		b.subscribers[key] = make(map[chan Invalidation]struct{})
	}
	b.subscribers[key][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[key], ch)
		if len(b.subscribers[key]) == 0 {
			delete(b.subscribers, key)
		}
		close(ch)
	}()

	return ch
}

// Invalidate publica uma invalidação para todos os assinantes do par
func (b *Broadcaster) Invalidate(userID string, assistantID assistant.ID) {
	evt := Invalidation{UserID: userID, AssistantID: assistantID, At: b.now().UTC()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers[subscriptionKey{userID, assistantID}] {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribers retorna quantos assinantes o par tem no momento
func (b *Broadcaster) Subscribers(userID string, assistantID assistant.ID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[subscriptionKey{userID, assistantID}])
}
