// Package history records which ROOT files have been browsed.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get for files never recorded.
var ErrNotFound = errors.New("file not in history")

// Entry is one browsed file.
type Entry struct {
	Path        string    `json:"path"`
	Nodes       int       `json:"nodes"`
	OpenCount   int       `json:"open_count"`
	FirstOpened time.Time `json:"first_opened"`
	LastOpened  time.Time `json:"last_opened"`
}

// Store is a sqlite backed history of browsed files.
type Store struct {
	db      *sql.DB
	dataDir string
	now     func() time.Time
}

// NewStore opens (creating if needed) history.db inside dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		db:      db,
		dataDir: dataDir,
		now:     time.Now,
	}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		nodes INTEGER NOT NULL DEFAULT 0,
		open_count INTEGER NOT NULL DEFAULT 0,
		first_opened TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_opened TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_files_last_opened ON files(last_opened);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record notes that path was browsed and produced a tree of nodes entries.
func (s *Store) Record(path string, nodes int) error {
	if path == "" {
		return errors.New("record history: empty path")
	}

	query := `
	INSERT INTO files (path, nodes, open_count, first_opened, last_opened)
	VALUES (?, ?, 1, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		nodes = excluded.nodes,
		open_count = files.open_count + 1,
		last_opened = excluded.last_opened
	`

	now := s.now()
	if _, err := s.db.Exec(query, path, nodes, now, now); err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}
	return nil
}

// Get returns the entry for path.
func (s *Store) Get(path string) (*Entry, error) {
	query := `
	SELECT path, nodes, open_count, first_opened, last_opened
	FROM files WHERE path = ?
	`

	e := &Entry{}
	err := s.db.QueryRow(query, path).Scan(&e.Path, &e.Nodes, &e.OpenCount, &e.FirstOpened, &e.LastOpened)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns up to limit entries, most recently opened first. A limit of
// zero or less returns everything.
func (s *Store) List(limit int) ([]*Entry, error) {
	query := `
	SELECT path, nodes, open_count, first_opened, last_opened
	FROM files ORDER BY last_opened DESC, path ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.Path, &e.Nodes, &e.OpenCount, &e.FirstOpened, &e.LastOpened); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM files")
	return err
}

// Close closes the history database
func (s *Store) Close() error {
	return s.db.Close()
}
