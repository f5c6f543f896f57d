package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
source_platform = "mercari"

[[platforms]]
name = "mercari"
export_glob = "/tmp/exports/mercari*.csv"
status_style = "code"
`

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("resolved = %q, exists = %v", resolved, exists)
	}
	if cfg.SourcePlatform != "mercari" {
		t.Fatalf("SourcePlatform = %q", cfg.SourcePlatform)
	}

	// Unset sections fall back to defaults.
	if cfg.Posting.MaxActiveItems != 100 || cfg.Posting.DailyRelist != 4 || cfg.Posting.DailyNew != 10 {
		t.Fatalf("Posting defaults = %+v", cfg.Posting)
	}
	if cfg.Retry.Attempts != 3 {
		t.Fatalf("Retry defaults = %+v", cfg.Retry)
	}
	if cfg.Ledger.Backend != "file" {
		t.Fatalf("Ledger backend = %q", cfg.Ledger.Backend)
	}
	if !filepath.IsAbs(cfg.Ledger.Path) {
		t.Fatalf("Ledger path not expanded: %q", cfg.Ledger.Path)
	}
}

func TestLoadRejectsUnknownSourcePlatform(t *testing.T) {
	path := writeConfig(t, `
source_platform = "rakuma"

[[platforms]]
name = "mercari"
export_glob = "/tmp/mercari*.csv"
`)
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "source_platform") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsDuplicatePlatforms(t *testing.T) {
	path := writeConfig(t, `
source_platform = "mercari"

[[platforms]]
name = "mercari"
export_glob = "/tmp/a*.csv"

[[platforms]]
name = "mercari"
export_glob = "/tmp/b*.csv"
`)
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsBadStatusStyle(t *testing.T) {
	path := writeConfig(t, `
source_platform = "mercari"

[[platforms]]
name = "mercari"
export_glob = "/tmp/a*.csv"
status_style = "numeric"
`)
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "status_style") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsBadLedgerBackend(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[ledger]
backend = "postgres"
`)
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "backend") {
		t.Fatalf("err = %v", err)
	}
}

func TestSampleConfigParses(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config must exist")
	}
	if cfg.SourcePlatform != "mercari" || cfg.Posting.Platform != "yahoo" {
		t.Fatalf("sample config = source %q, posting %q", cfg.SourcePlatform, cfg.Posting.Platform)
	}
	if len(cfg.Platforms) != 3 {
		t.Fatalf("sample platforms = %d", len(cfg.Platforms))
	}
}

func TestPlatformByName(t *testing.T) {
	cfg := Config{Platforms: []Platform{{Name: "mercari"}, {Name: "yahoo"}}}
	if _, ok := cfg.PlatformByName("yahoo"); !ok {
		t.Fatal("yahoo not found")
	}
	if _, ok := cfg.PlatformByName("ebay"); ok {
		t.Fatal("ebay must not be found")
	}
}
