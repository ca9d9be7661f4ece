package repos

import (
	"slices"
	"sync"

	"storefront/internal/domain"
)

// MessageRepo is the append-only public contact wall.
type MessageRepo struct {
	mu   sync.RWMutex
	msgs []domain.PublicMessage
}

func NewMessageRepo() *MessageRepo { return &MessageRepo{} }

func (r *MessageRepo) Append(m domain.PublicMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *MessageRepo) List() []domain.PublicMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.msgs)
	if out == nil {
		out = []domain.PublicMessage{}
	}
	return out
}
