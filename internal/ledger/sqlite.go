package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps ledger entries in a small SQLite database. The full
// entry set is still loaded at open so Done never touches the database on
// the hot path; MarkDone inserts and relies on the database to flush.
type SQLiteStore struct {
	mu      sync.Mutex
	db      *sql.DB
	path    string
	entries *entrySet
}

// OpenSQLite initializes or connects to the ledger database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ledger_entries (
        token TEXT PRIMARY KEY,
        completed_at TEXT NOT NULL
    )`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger table: %w", err)
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.loadEntries(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) loadEntries(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT token FROM ledger_entries`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	entries := newEntrySet()
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		entries.add(token)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	s.entries = entries
	return nil
}

func (s *SQLiteStore) Done(subject, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.done(subject, kind)
}

func (s *SQLiteStore) MarkDone(subject, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries.done(subject, kind) {
		return nil
	}
	token := Key(subject, kind)
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO ledger_entries (token, completed_at) VALUES (?, ?)`,
		token,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	s.entries.add(token)
	return nil
}

func (s *SQLiteStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.entries.keys()
	sort.Strings(keys)
	return keys
}

func (s *SQLiteStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM ledger_entries`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	s.entries = newEntrySet()
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
