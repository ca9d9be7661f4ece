package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"storefront/internal/domain"
)

const (
	docProducts = "products"
	docHistory  = "product_history"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection: keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Whole-document snapshots, one row per document
CREATE TABLE IF NOT EXISTS snapshots(
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// SQLiteSnapshotStore keeps the two catalog documents as rows of a SQLite file.
type SQLiteSnapshotStore struct{ db *sqlx.DB }

func NewSQLiteSnapshotStore(db *sqlx.DB) *SQLiteSnapshotStore { return &SQLiteSnapshotStore{db: db} }

func (s *SQLiteSnapshotStore) SaveProducts(products map[string]domain.Product) error {
	return s.put(docProducts, products)
}

func (s *SQLiteSnapshotStore) SaveHistory(history map[string][]domain.HistoryEntry) error {
	return s.put(docHistory, history)
}

func (s *SQLiteSnapshotStore) put(name string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots(name, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, name, string(b))
	return err
}

func (s *SQLiteSnapshotStore) get(name string, dst any) error {
	var body string
	err := s.db.Get(&body, `SELECT body FROM snapshots WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load() (map[string]domain.Product, map[string][]domain.HistoryEntry, error) {
	products := map[string]domain.Product{}
	history := map[string][]domain.HistoryEntry{}
	errP := s.get(docProducts, &products)
	if errP != nil {
		products = map[string]domain.Product{}
	}
	errH := s.get(docHistory, &history)
	if errH != nil {
		history = map[string][]domain.HistoryEntry{}
	}
	return products, history, errors.Join(errP, errH)
}

func (s *SQLiteSnapshotStore) Close() error { return s.db.Close() }
