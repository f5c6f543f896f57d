package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMarkAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if store.Done("m1", "delist") {
		t.Fatal("fresh ledger must be empty")
	}
	if err := store.MarkDone("m1", "delist"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if !store.Done("m1", "delist") {
		t.Fatal("entry must be visible immediately")
	}
	if store.Done("m1", "relist") {
		t.Fatal("other kinds must not match")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if !reopened.Done("m1", "delist") {
		t.Fatal("entry must survive reopen")
	}
}

func TestFileStoreMarkDoneIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		if err := store.MarkDone("m1", "relist"); err != nil {
			t.Fatalf("MarkDone: %v", err)
		}
	}
	if keys := store.Keys(); len(keys) != 1 {
		t.Fatalf("Keys = %v, want one entry", keys)
	}
}

func TestFileStoreLegacyBareEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	// Older ledgers recorded bare subjects, including URLs with colons.
	content := "m1\nhttps://example.com/items/42\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer store.Close()

	if !store.Done("m1", "delist") || !store.Done("m1", "relist") {
		t.Fatal("bare entry must match every kind")
	}
	if !store.Done("https://example.com/items/42", "delist") {
		t.Fatal("URL subject must not be split at its colons")
	}
}

func TestFileStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer store.Close()

	if err := store.MarkDone("m1", "delist"); err != nil {
		t.Fatal(err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if store.Done("m1", "delist") {
		t.Fatal("reset ledger must forget entries")
	}
	if info, err := os.Stat(path); err != nil || info.Size() != 0 {
		t.Fatalf("ledger file not truncated: %v, %v", info, err)
	}
}

func TestFileStoreRejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	first, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer first.Close()

	if _, err := OpenFile(path); err == nil {
		t.Fatal("second writer must be rejected while the lock is held")
	}
}
