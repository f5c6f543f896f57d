package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// FileStore is the append-only flat-file backend. One token per line; the
// file is read fully at open and every append is fsynced. A flock guards
// against a second process writing the same ledger.
type FileStore struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	lock    *flock.Flock
	entries *entrySet
}

// OpenFile opens or creates the ledger file and acquires its writer lock.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("ledger %s is locked by another process", path)
	}

	entries, err := readEntries(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open ledger for append: %w", err)
	}

	return &FileStore{path: path, file: file, lock: lock, entries: entries}, nil
}

func readEntries(path string) (*entrySet, error) {
	entries := newEntrySet()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		token := strings.TrimSpace(scanner.Text())
		if token == "" {
			continue
		}
		entries.add(token)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

func (s *FileStore) Done(subject, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.done(subject, kind)
}

func (s *FileStore) MarkDone(subject, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := Key(subject, kind)
	if s.entries.done(subject, kind) {
		return nil
	}
	if _, err := s.file.WriteString(token + "\n"); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("flush ledger entry: %w", err)
	}
	s.entries.add(token)
	return nil
}

func (s *FileStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.entries.keys()
	sort.Strings(keys)
	return keys
}

// Reset truncates the ledger file and clears the in-memory index.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate ledger: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("flush truncated ledger: %w", err)
	}
	s.entries = newEntrySet()
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			firstErr = err
		}
		s.file = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.lock = nil
	}
	return firstErr
}
