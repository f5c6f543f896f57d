package ledger

import (
	"errors"
	"strings"
)

// ErrCorrupt marks a ledger that exists but cannot be trusted. Callers must
// abort the run rather than treat entries as "not yet done".
var ErrCorrupt = errors.New("ledger unreadable")

// Store records completed actions. Implementations load all entries at open
// time; Done is a pure in-memory lookup.
type Store interface {
	// Done reports whether the (subject, kind) pair has been completed.
	Done(subject, kind string) bool

	// MarkDone durably records the pair. The write is flushed before
	// MarkDone returns.
	MarkDone(subject, kind string) error

	// Keys returns every recorded entry token, sorted, for operator
	// inspection.
	Keys() []string

	// Reset clears the ledger. This is an explicit operator action, never
	// called by run logic.
	Reset() error

	Close() error
}

// Key composes the entry token for a (subject, kind) pair. Legacy ledgers
// written as bare subject lines still match any kind; see parseKey.
func Key(subject, kind string) string {
	return subject + ":" + kind
}

// knownKinds guards composite parsing: subjects can contain colons (URLs),
// so a token only counts as subject:kind when the suffix is a real kind.
var knownKinds = map[string]struct{}{
	"delist":          {},
	"prune_duplicate": {},
	"relist":          {},
	"create_new":      {},
}

// parseKey splits an entry token. Lines without a recognized kind suffix are
// legacy subject-only entries that match every kind.
func parseKey(token string) (subject, kind string, composite bool) {
	idx := strings.LastIndex(token, ":")
	if idx < 0 {
		return token, "", false
	}
	suffix := token[idx+1:]
	if _, ok := knownKinds[suffix]; !ok {
		return token, "", false
	}
	return token[:idx], suffix, true
}

// entrySet is the shared in-memory index built by every backend.
type entrySet struct {
	composite map[string]struct{}
	bare      map[string]struct{}
}

func newEntrySet() *entrySet {
	return &entrySet{
		composite: make(map[string]struct{}),
		bare:      make(map[string]struct{}),
	}
}

func (s *entrySet) add(token string) {
	if _, _, composite := parseKey(token); composite {
		s.composite[token] = struct{}{}
		return
	}
	s.bare[token] = struct{}{}
}

func (s *entrySet) done(subject, kind string) bool {
	if _, ok := s.composite[Key(subject, kind)]; ok {
		return true
	}
	_, ok := s.bare[subject]
	return ok
}

func (s *entrySet) keys() []string {
	keys := make([]string, 0, len(s.composite)+len(s.bare))
	for token := range s.composite {
		keys = append(keys, token)
	}
	for token := range s.bare {
		keys = append(keys, token)
	}
	return keys
}
