// Package catalog stores the index catalog and link topology in SQLite.
package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/sifthq/sift/internal/ast"
	"github.com/sifthq/sift/internal/dsl"
	"github.com/sifthq/sift/internal/sqlutil"
)

var (
	// ErrIndexNotFound indicates the requested index is not in the catalog.
	ErrIndexNotFound = errors.New("index not found in catalog")
)

// Store is the SQLite catalog handle. It implements dsl.Catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path. The parent directory is
// created if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory opens an in-memory catalog, used by tests.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS indexes (
			name TEXT PRIMARY KEY,
			index_name TEXT NOT NULL,
			options TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS links (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			left_field TEXT NOT NULL,
			right_field TEXT NOT NULL,
			UNIQUE(source, target, left_field, right_field)
		);

		CREATE INDEX IF NOT EXISTS idx_links_source ON links(source);
	`)
	if err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Resolve maps a logical index name to its backend name and options.
func (s *Store) Resolve(index string) (*dsl.IndexOptions, error) {
	var indexName, optionsJSON string
	err := s.db.QueryRow(
		`SELECT index_name, options FROM indexes WHERE name = ?`, index,
	).Scan(&indexName, &optionsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve index %s: %w", index, err)
	}

	options := make(map[string]string)
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return nil, fmt.Errorf("corrupt options for index %s: %w", index, err)
	}

	return &dsl.IndexOptions{IndexName: indexName, Options: options}, nil
}

// Links enumerates the outgoing index links declared on an index, in stable
// (target, left field, right field) order.
func (s *Store) Links(index string) ([]ast.IndexLink, error) {
	rows, err := s.db.Query(`
		SELECT target, left_field, right_field
		FROM links
		WHERE source = ?
		ORDER BY target, left_field, right_field
	`, index)
	if err != nil {
		return nil, fmt.Errorf("failed to query links for %s: %w", index, err)
	}

	links, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (ast.IndexLink, error) {
		var link ast.IndexLink
		err := rows.Scan(&link.QualifiedIndex, &link.LeftField, &link.RightField)
		return link, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan links for %s: %w", index, err)
	}
	return links, nil
}

// AddIndex inserts or replaces an index definition.
func (s *Store) AddIndex(name, indexName string, options map[string]string) error {
	if options == nil {
		options = map[string]string{}
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO indexes (name, index_name, options) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET index_name = excluded.index_name, options = excluded.options
	`, name, indexName, string(optionsJSON))
	if err != nil {
		return fmt.Errorf("failed to store index %s: %w", name, err)
	}
	return nil
}

// AddLink inserts a link definition; duplicates are ignored.
func (s *Store) AddLink(source string, link ast.IndexLink) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO links (source, target, left_field, right_field)
		VALUES (?, ?, ?, ?)
	`, source, link.QualifiedIndex, link.LeftField, link.RightField)
	if err != nil {
		return fmt.Errorf("failed to store link %s -> %s: %w", source, link.QualifiedIndex, err)
	}
	return nil
}
