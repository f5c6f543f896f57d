package testsupport

import (
	"path/filepath"
	"testing"

	"crosslist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It registers a catalog-style source marketplace and a label-style posting
// marketplace whose export globs point into the temp directory; tests drop
// export files there with WriteExport.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Ledger.Path = filepath.Join(base, "ledger.txt")
	cfg.SourcePlatform = "mercari"
	cfg.Posting.Platform = "yahoo"
	cfg.Platforms = []config.Platform{
		{
			Name:        "mercari",
			ExportGlob:  filepath.Join(base, "exports", "mercari*.csv"),
			StatusStyle: config.StatusStyleCode,
		},
		{
			Name:        "yahoo",
			ExportGlob:  filepath.Join(base, "exports", "yahoo*.csv"),
			StatusStyle: config.StatusStyleLabel,
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithPlatform appends an additional marketplace to the test config.
func WithPlatform(platform config.Platform) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Platforms = append(cfg.Platforms, platform)
	}
}

// WithQuotas overrides the posting budget on the test config.
func WithQuotas(maxActive, dailyRelist, dailyNew int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Posting.MaxActiveItems = maxActive
		cfg.Posting.DailyRelist = dailyRelist
		cfg.Posting.DailyNew = dailyNew
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
