package config

import (
	"fmt"
	"strings"
)

// normalize expands paths and fills gaps left by a sparse config file.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = ExpandPath(valueOr(c.Paths.DataDir, defaultDataDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(valueOr(c.Paths.LogDir, defaultLogDir)); err != nil {
		return err
	}

	c.Ledger.Backend = strings.ToLower(strings.TrimSpace(valueOr(c.Ledger.Backend, defaultLedgerBackend)))
	if c.Ledger.Path, err = ExpandPath(valueOr(c.Ledger.Path, defaultLedgerPath)); err != nil {
		return err
	}

	c.SourcePlatform = strings.TrimSpace(c.SourcePlatform)
	c.Posting.Platform = strings.TrimSpace(c.Posting.Platform)

	for i := range c.Platforms {
		platform := &c.Platforms[i]
		platform.Name = strings.TrimSpace(platform.Name)
		platform.StatusStyle = strings.ToLower(strings.TrimSpace(valueOr(platform.StatusStyle, "code")))
		if platform.ExportGlob, err = ExpandPath(platform.ExportGlob); err != nil {
			return fmt.Errorf("platform %q: %w", platform.Name, err)
		}
	}

	if c.Retry.Attempts <= 0 {
		c.Retry.Attempts = defaultRetryAttempts
	}
	if c.Retry.InitialDelaySeconds <= 0 {
		c.Retry.InitialDelaySeconds = defaultRetryInitialSec
	}
	if c.Retry.MaxDelaySeconds <= 0 {
		c.Retry.MaxDelaySeconds = defaultRetryMaxSec
	}
	if c.Actuator.TimeoutSeconds <= 0 {
		c.Actuator.TimeoutSeconds = defaultActuatorTimeout
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	c.Logging.Level = valueOr(c.Logging.Level, defaultLogLevel)
	c.Logging.Format = valueOr(c.Logging.Format, defaultLogFormat)
	return nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
