package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Status style values accepted by Platform.StatusStyle.
const (
	StatusStyleCode  = "code"
	StatusStyleLabel = "label"
)

// Platform describes one marketplace export source.
type Platform struct {
	Name       string `toml:"name"`
	ExportGlob string `toml:"export_glob"`

	// StatusStyle selects the status mapping: "code" for numeric catalog
	// exports, "label" for textual auction exports.
	StatusStyle string `toml:"status_style"`

	// TitleSuffixes are marketplace decorations stripped from titles.
	TitleSuffixes []string `toml:"title_suffixes"`

	// RequireFieldAgreement enables the two-field product key check for
	// this export.
	RequireFieldAgreement bool `toml:"require_field_agreement"`
}

// Ledger selects and locates the idempotency log backend.
type Ledger struct {
	Backend string `toml:"backend"` // "file" or "sqlite"
	Path    string `toml:"path"`
}

// Posting configures the daily listing budget on the posting marketplace.
type Posting struct {
	Platform       string `toml:"platform"`
	MaxActiveItems int    `toml:"max_active_items"`
	DailyRelist    int    `toml:"daily_relist"`
	DailyNew       int    `toml:"daily_new"`
}

// Limits holds data-quality thresholds surfaced as run-summary breaches.
type Limits struct {
	ExportRowCeiling int `toml:"export_row_ceiling"`
}

// Retry configures the backoff wrapper around actuator attempts.
type Retry struct {
	Attempts            int `toml:"attempts"`
	InitialDelaySeconds int `toml:"initial_delay_seconds"`
	MaxDelaySeconds     int `toml:"max_delay_seconds"`
}

// Actuator configures the external program that applies actions.
type Actuator struct {
	Command        []string `toml:"command"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Notifications contains webhook notification settings.
type Notifications struct {
	WebhookURL     string `toml:"webhook_url"`
	RequestTimeout int    `toml:"request_timeout"`
	Runs           bool   `toml:"runs"`
	Errors         bool   `toml:"errors"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for crosslist.
type Config struct {
	Paths          Paths         `toml:"paths"`
	SourcePlatform string        `toml:"source_platform"`
	Platforms      []Platform    `toml:"platforms"`
	Ledger         Ledger        `toml:"ledger"`
	Posting        Posting       `toml:"posting"`
	Limits         Limits        `toml:"limits"`
	Retry          Retry         `toml:"retry"`
	Actuator       Actuator      `toml:"actuator"`
	Notifications  Notifications `toml:"notifications"`
	Logging        Logging       `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/crosslist/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("crosslist.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Ledger.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory %q: %w", dir, err)
		}
	}
	return nil
}

// PlatformByName returns the export source for the named marketplace.
func (c *Config) PlatformByName(name string) (Platform, bool) {
	for _, platform := range c.Platforms {
		if platform.Name == name {
			return platform, true
		}
	}
	return Platform{}, false
}

// ExpandPath resolves a leading tilde and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the given location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
