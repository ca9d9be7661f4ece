package repos_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestProductRepoKeepsInsertionOrder(t *testing.T) {
	r := repos.NewProductRepo()
	r.Put(domain.Product{ID: "b", Visible: true})
	r.Put(domain.Product{ID: "a", Visible: false})
	r.Put(domain.Product{ID: "c", Visible: true})
	r.Put(domain.Product{ID: "b", Name: "replaced", Visible: true})

	assert.Equal(t, []string{"b", "a", "c"}, ids(r.List(false)))
	assert.Equal(t, []string{"b", "c"}, ids(r.List(true)))

	got, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "replaced", got.Name)

	_, ok = r.Delete("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, ids(r.List(false)))
	_, ok = r.Delete("a")
	assert.False(t, ok)
}

func TestProductRepoRestoreOrdersByCreation(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := repos.NewProductRepo()
	r.Restore(map[string]domain.Product{
		"late":  {ID: "late", CreatedAt: t0.Add(time.Hour)},
		"early": {ID: "early", CreatedAt: t0},
		"mid":   {CreatedAt: t0.Add(time.Minute)},
	}, nil)

	assert.Equal(t, []string{"early", "mid", "late"}, ids(r.List(false)))
	assert.Empty(t, r.History("early"))
	assert.NotNil(t, r.History("early"))
}

func TestProductRepoHistoryIsCopied(t *testing.T) {
	r := repos.NewProductRepo()
	r.AppendHistory("p", domain.HistoryEntry{Action: domain.HistoryCreate})
	h := r.History("p")
	h[0].Action = domain.HistoryDelete
	assert.Equal(t, domain.HistoryCreate, r.History("p")[0].Action)
}

func TestProductRepoLookup(t *testing.T) {
	r := repos.NewProductRepo()
	r.Put(domain.Product{ID: "x", PriceCents: 5})
	got := r.Lookup([]string{"x", "missing"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got["x"].PriceCents)
}

func TestUserRepoRejectsDuplicate(t *testing.T) {
	r := repos.NewUserRepo()
	require.NoError(t, r.Create(domain.Customer{Email: "a@b.test"}))
	assert.ErrorIs(t, r.Create(domain.Customer{Email: "a@b.test"}), repos.ErrDuplicate)

	_, err := r.ByEmail("nobody@b.test")
	assert.ErrorIs(t, err, repos.ErrNoRecord)
}

func TestProductRepoConcurrentAccess(t *testing.T) {
	r := repos.NewProductRepo()
	const n = 40
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("p-%d", i)
			r.Put(domain.Product{ID: id, Visible: true})
			r.AppendHistory(id, domain.HistoryEntry{Action: domain.HistoryCreate})
		}()
		go func() {
			defer wg.Done()
			_ = r.List(true)
			_, _ = r.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, n, r.Len())
	assert.Len(t, r.List(false), n)
	products, history := r.Snapshot()
	assert.Len(t, products, n)
	assert.Len(t, history, n)
}

func TestFileSnapshotStoreConcurrentSaves(t *testing.T) {
	dir := t.TempDir()
	s := repos.NewFileSnapshotStore(filepath.Join(dir, "products.json"), filepath.Join(dir, "history.json"))
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("p-%d", i)
			assert.NoError(t, s.SaveProducts(map[string]domain.Product{id: {ID: id}}))
		}()
	}
	wg.Wait()

	// the last writer wins whole; no interleaved document
	got, _, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
