package assistant

import "sync"

// Registry é o catálogo imutável de assistentes, montado uma única vez
type Registry struct {
	order    []ID
	personas map[ID]Persona
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default retorna o catálogo compartilhado com os assistentes de receitas e despesas
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(
			Persona{
				ID:          IDIncome,
				Name:        "Income Advisor",
				Description: "Helps you understand, grow and diversify your sources of income.",
				SystemPrompt: `You are a personal finance assistant specialised in income.
Help the user understand their earnings, identify opportunities to increase income
(raises, side businesses, freelancing, passive income and investments) and plan
around irregular pay. Be practical, concrete and encouraging.
Never give legal or tax advice as definitive; recommend a professional when the
question requires one. Answer in the language the user writes in.`,
			},
			Persona{
				ID:          IDExpenditure,
				Name:        "Expenditure Advisor",
				Description: "Helps you track spending, build a budget and cut unnecessary costs.",
				SystemPrompt: `You are a personal finance assistant specialised in expenditure.
Help the user categorise their spending, build and follow a realistic budget,
spot recurring costs that can be reduced and prepare for large purchases.
Base suggestions on the numbers the user shares, be non-judgemental and keep
recommendations actionable. Answer in the language the user writes in.`,
			},
		)
	})
	return defaultRegistry
}

// NewRegistry cria um catálogo a partir das personas informadas, preservando a ordem.
// Uma persona repetida substitui a anterior sem alterar sua posição.
func NewRegistry(personas ...Persona) *Registry {
	r := &Registry{
		order:    make([]ID, 0, len(personas)),
		personas: make(map[ID]Persona, len(personas)),
	}
	for _, p := range personas {
		if _, exists := r.personas[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.personas[p.ID] = p
	}
	return r
}

// Get busca uma persona pelo identificador
func (r *Registry) Get(id ID) (Persona, error) {
	p, ok := r.personas[id]
	if !ok {
		return Persona{}, ErrUnknownAssistant
	}
	return p, nil
}

// Lookup valida o identificador bruto e retorna a persona correspondente
func (r *Registry) Lookup(raw string) (Persona, error) {
	id, err := ParseID(raw)
	if err != nil {
		return Persona{}, err
	}
	return r.Get(id)
}

// List retorna todas as personas na ordem de cadastro
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}
