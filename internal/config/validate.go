package config

import (
	"errors"
	"fmt"
)

// Validate checks cross-field consistency after normalization.
func (c *Config) Validate() error {
	if len(c.Platforms) == 0 {
		return errors.New("config: at least one [[platforms]] entry is required")
	}

	seen := make(map[string]bool, len(c.Platforms))
	for _, platform := range c.Platforms {
		if platform.Name == "" {
			return errors.New("config: platform name must not be empty")
		}
		if seen[platform.Name] {
			return fmt.Errorf("config: duplicate platform %q", platform.Name)
		}
		seen[platform.Name] = true

		switch platform.StatusStyle {
		case StatusStyleCode, StatusStyleLabel:
		default:
			return fmt.Errorf("config: platform %q: status_style must be \"code\" or \"label\", got %q", platform.Name, platform.StatusStyle)
		}
		if platform.ExportGlob == "" {
			return fmt.Errorf("config: platform %q: export_glob is required", platform.Name)
		}
	}

	if c.SourcePlatform == "" {
		return errors.New("config: source_platform is required")
	}
	if !seen[c.SourcePlatform] {
		return fmt.Errorf("config: source_platform %q has no [[platforms]] entry", c.SourcePlatform)
	}
	if c.Posting.Platform != "" && !seen[c.Posting.Platform] {
		return fmt.Errorf("config: posting platform %q has no [[platforms]] entry", c.Posting.Platform)
	}

	switch c.Ledger.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: ledger backend must be \"file\" or \"sqlite\", got %q", c.Ledger.Backend)
	}

	if c.Posting.MaxActiveItems < 0 || c.Posting.DailyRelist < 0 || c.Posting.DailyNew < 0 {
		return errors.New("config: posting quotas must not be negative")
	}
	if c.Limits.ExportRowCeiling < 0 {
		return errors.New("config: export_row_ceiling must not be negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
