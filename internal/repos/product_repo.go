package repos

import (
	"slices"
	"sync"

	"storefront/internal/domain"
)

// ProductRepo owns the live catalog and the append-only per-product history.
// Products keep insertion order for listing.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
	history  map[string][]domain.HistoryEntry
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: map[string]domain.Product{},
		history:  map[string][]domain.HistoryEntry{},
	}
}

// Restore replaces the repo contents with a loaded snapshot. Insertion order
// is rebuilt from created_at, then id.
func (r *ProductRepo) Restore(products map[string]domain.Product, history map[string][]domain.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[string]domain.Product, len(products))
	r.order = r.order[:0]
	for id, p := range products {
		if p.ID == "" {
			p.ID = id
		}
		r.products[id] = p.Clone()
		r.order = append(r.order, id)
	}
	slices.SortFunc(r.order, func(a, b string) int {
		pa, pb := r.products[a], r.products[b]
		if c := pa.CreatedAt.Compare(pb.CreatedAt); c != 0 {
			return c
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})

	r.history = make(map[string][]domain.HistoryEntry, len(history))
	for id, entries := range history {
		r.history[id] = slices.Clone(entries)
	}
}

func (r *ProductRepo) List(visibleOnly bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if visibleOnly && !p.Visible {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func (r *ProductRepo) Get(id string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, false
	}
	return p.Clone(), true
}

// Lookup resolves several ids under one read lock so callers see a single
// consistent catalog state. Unknown ids are absent from the result.
func (r *ProductRepo) Lookup(ids []string) map[string]domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p.Clone()
		}
	}
	return out
}

// Put inserts or replaces a product.
func (r *ProductRepo) Put(p domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.products[p.ID] = p.Clone()
}

// Delete removes a product from the live set and returns its last state.
func (r *ProductRepo) Delete(id string) (domain.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, false
	}
	delete(r.products, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return p, true
}

func (r *ProductRepo) AppendHistory(id string, e domain.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history[id] = append(r.history[id], e)
}

// History returns the entries for id oldest first; never nil.
func (r *ProductRepo) History(id string) []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.HistoryEntry, len(r.history[id]))
	copy(out, r.history[id])
	return out
}

// Snapshot copies both documents for persistence.
func (r *ProductRepo) Snapshot() (map[string]domain.Product, map[string][]domain.HistoryEntry) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make(map[string]domain.Product, len(r.products))
	for id, p := range r.products {
		products[id] = p.Clone()
	}
	history := make(map[string][]domain.HistoryEntry, len(r.history))
	for id, entries := range r.history {
		history[id] = slices.Clone(entries)
	}
	return products, history
}

func (r *ProductRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}
