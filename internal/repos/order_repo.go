package repos

import (
	"slices"
	"sync"

	"storefront/internal/domain"
)

// OrderRepo keeps orders in memory only; they do not survive a restart.
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepo() *OrderRepo { return &OrderRepo{orders: map[string]domain.Order{}} }

func (r *OrderRepo) Create(o domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = copyOrder(o)
}

func (r *OrderRepo) Get(id string) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, false
	}
	return copyOrder(o), true
}

func (r *OrderRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	o.DownloadTokens = slices.Clone(o.DownloadTokens)
	if o.DownloadTokens == nil {
		o.DownloadTokens = []string{}
	}
	return o
}
