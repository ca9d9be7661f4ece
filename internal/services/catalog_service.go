package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// PersistPolicy decides what a failed snapshot save does to the request that
// triggered it.
type PersistPolicy int

const (
	// PersistIgnore logs the failure and keeps the in-memory change.
	PersistIgnore PersistPolicy = iota
	// PersistPropagate logs and also returns ErrPersist. The in-memory
	// change is kept either way.
	PersistPropagate
)

func ParsePersistPolicy(s string) PersistPolicy {
	if s == "propagate" {
		return PersistPropagate
	}
	return PersistIgnore
}

type CatalogService struct {
	Prods  *repos.ProductRepo
	Store  repos.SnapshotStore
	Policy PersistPolicy

	// mu serializes mutations together with their snapshot save.
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewCatalogService(prods *repos.ProductRepo, store repos.SnapshotStore, policy PersistPolicy) *CatalogService {
	return &CatalogService{
		Prods:  prods,
		Store:  store,
		Policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Load restores the catalog from the snapshot store. Whatever could be read
// is kept; the returned error is informational only.
func (s *CatalogService) Load() error {
	if s.Store == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products, history, err := s.Store.Load()
	s.Prods.Restore(products, history)
	return err
}

func (s *CatalogService) ListProducts(visibleOnly bool) []domain.Product {
	return s.Prods.List(visibleOnly)
}

// Search narrows the listing by a case-insensitive text match on name,
// author and description, and by category. Empty arguments match everything.
func (s *CatalogService) Search(q, category string, visibleOnly bool) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	category = strings.TrimSpace(category)
	all := s.Prods.List(visibleOnly)
	if q == "" && category == "" {
		return all
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category != "" && !slices.ContainsFunc(p.Categories, func(c string) bool { return strings.EqualFold(c, category) }) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Author), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetProduct returns a visible product. Hidden and unknown ids both yield
// ErrNotFound.
func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, ok := s.Prods.Get(id)
	if !ok || !p.Visible {
		return domain.Product{}, kindErr(ErrNotFound, "Product not found")
	}
	return p, nil
}

func (s *CatalogService) Create(in domain.ProductInput) (domain.Product, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := in.Product()
	p.ID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.Prods.Put(p)
	snap := p.Clone()
	s.Prods.AppendHistory(p.ID, domain.HistoryEntry{Action: domain.HistoryCreate, At: now, Data: &snap})
	return p, s.persist()
}

// Update merges only the fields present in patch onto the stored product.
func (s *CatalogService) Update(id string, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.Prods.Get(id)
	if !ok {
		return domain.Product{}, kindErr(ErrNotFound, "Product not found")
	}
	if nulls := patch.NullFields(); len(nulls) > 0 {
		fe := validate.FieldErrors{}
		for _, f := range nulls {
			fe[f] = f + " cannot be null"
		}
		return domain.Product{}, fmt.Errorf("%w: %w", ErrValidation, fe)
	}
	updated := patch.ApplyTo(existing)
	if err := validate.Struct(updated.Input()); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	now := s.now()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now

	s.Prods.Put(updated)
	before, after := existing.Clone(), updated.Clone()
	s.Prods.AppendHistory(id, domain.HistoryEntry{Action: domain.HistoryUpdate, At: now, Before: &before, After: &after})
	return updated, s.persist()
}

// Delete drops the product from the live catalog; its history is kept.
func (s *CatalogService) Delete(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.Prods.Delete(id)
	if !ok {
		return domain.Product{}, kindErr(ErrNotFound, "Product not found")
	}
	before := removed.Clone()
	s.Prods.AppendHistory(id, domain.HistoryEntry{Action: domain.HistoryDelete, At: s.now(), Before: &before})
	return removed, s.persist()
}

// History returns every recorded change for id, oldest first. Unknown ids
// give an empty list.
func (s *CatalogService) History(id string) []domain.HistoryEntry {
	return s.Prods.History(id)
}

// SeedIfEmpty creates the given products when the catalog has none.
func (s *CatalogService) SeedIfEmpty(items []domain.ProductInput) (int, error) {
	if s.Prods.Len() > 0 {
		return 0, nil
	}
	n := 0
	for _, in := range items {
		if _, err := s.Create(in); err != nil && !errors.Is(err, ErrPersist) {
			return n, err
		}
		n++
	}
	return n, nil
}

// persist writes both documents. Callers hold s.mu.
func (s *CatalogService) persist() error {
	if s.Store == nil {
		return nil
	}
	products, history := s.Prods.Snapshot()
	err := errors.Join(s.Store.SaveProducts(products), s.Store.SaveHistory(history))
	if err == nil {
		return nil
	}
	applog.Warn(nil, "persist.save.fail", err, map[string]any{"products": len(products)})
	if s.Policy == PersistPropagate {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
