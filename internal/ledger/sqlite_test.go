package ledger

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreMarkAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := store.MarkDone("m1", "delist"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if err := store.MarkDone("m1", "delist"); err != nil {
		t.Fatalf("repeat MarkDone: %v", err)
	}
	if !store.Done("m1", "delist") {
		t.Fatal("entry must be visible")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if !reopened.Done("m1", "delist") {
		t.Fatal("entry must survive reopen")
	}
	if reopened.Done("m2", "delist") {
		t.Fatal("unrecorded entry must not match")
	}
}

func TestSQLiteStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	if err := store.MarkDone("m1", "relist"); err != nil {
		t.Fatal(err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if store.Done("m1", "relist") {
		t.Fatal("reset ledger must forget entries")
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Fatalf("Keys = %v, want empty", keys)
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		token     string
		subject   string
		kind      string
		composite bool
	}{
		{token: "m1:delist", subject: "m1", kind: "delist", composite: true},
		{token: "https://example.com/items/42:relist", subject: "https://example.com/items/42", kind: "relist", composite: true},
		{token: "https://example.com/items/42", subject: "https://example.com/items/42", composite: false},
		{token: "m1", subject: "m1", composite: false},
	}
	for _, tc := range cases {
		subject, kind, composite := parseKey(tc.token)
		if subject != tc.subject || kind != tc.kind || composite != tc.composite {
			t.Errorf("parseKey(%q) = %q, %q, %v; want %q, %q, %v",
				tc.token, subject, kind, composite, tc.subject, tc.kind, tc.composite)
		}
	}
}
