package ledger

import (
	"sort"
	"sync"
)

// MemoryStore keeps entries in memory only. It backs tests and dry runs
// where durability would be wrong: a plan must not consume ledger state.
type MemoryStore struct {
	mu      sync.Mutex
	entries *entrySet
}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: newEntrySet()}
}

func (s *MemoryStore) Done(subject, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.done(subject, kind)
}

func (s *MemoryStore) MarkDone(subject, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.add(Key(subject, kind))
	return nil
}

func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.entries.keys()
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = newEntrySet()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
