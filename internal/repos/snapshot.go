package repos

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/domain"
)

// SnapshotStore persists the whole catalog and its history as two documents,
// each fully rewritten on every save.
type SnapshotStore interface {
	SaveProducts(products map[string]domain.Product) error
	SaveHistory(history map[string][]domain.HistoryEntry) error
	// Load returns whatever could be read. A missing document is not an error;
	// a malformed one is reported but the other document is still returned.
	Load() (map[string]domain.Product, map[string][]domain.HistoryEntry, error)
}

// FileSnapshotStore writes the two documents as JSON files.
type FileSnapshotStore struct {
	ProductsPath string
	HistoryPath  string

	mu sync.Mutex
}

func NewFileSnapshotStore(productsPath, historyPath string) *FileSnapshotStore {
	return &FileSnapshotStore{ProductsPath: productsPath, HistoryPath: historyPath}
}

func (s *FileSnapshotStore) SaveProducts(products map[string]domain.Product) error {
	return s.save(s.ProductsPath, products)
}

func (s *FileSnapshotStore) SaveHistory(history map[string][]domain.HistoryEntry) error {
	return s.save(s.HistoryPath, history)
}

func (s *FileSnapshotStore) save(path string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(path, b)
}

func (s *FileSnapshotStore) Load() (map[string]domain.Product, map[string][]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := map[string]domain.Product{}
	history := map[string][]domain.HistoryEntry{}
	errP := readJSON(s.ProductsPath, &products)
	if errP != nil {
		products = map[string]domain.Product{}
	}
	errH := readJSON(s.HistoryPath, &history)
	if errH != nil {
		history = map[string][]domain.HistoryEntry{}
	}
	return products, history, errors.Join(errP, errH)
}

func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic replaces path with data via a synced temp file and rename,
// so readers never observe a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
