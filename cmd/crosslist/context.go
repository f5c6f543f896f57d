package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"crosslist/internal/config"
	"crosslist/internal/executor"
	"crosslist/internal/ledger"
	"crosslist/internal/logging"
	"crosslist/internal/notify"
	"crosslist/internal/runner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// openLedger opens the configured ledger backend. Callers own the Close.
func (c *commandContext) openLedger() (ledger.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Ledger.Backend {
	case "sqlite":
		return ledger.OpenSQLite(cfg.Ledger.Path)
	default:
		return ledger.OpenFile(cfg.Ledger.Path)
	}
}

// buildExecutor wires the configured actuator program. Runs require one;
// plans pass allowNoop to simulate without marketplace access.
func (c *commandContext) buildExecutor(allowNoop bool) (executor.Executor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.Actuator.Command) == 0 {
		if allowNoop {
			return executor.Noop(), nil
		}
		return nil, fmt.Errorf("no actuator command configured; set [actuator] command in the config or use `crosslist plan`")
	}
	return &executor.CommandExecutor{
		Argv:    cfg.Actuator.Command,
		Timeout: time.Duration(cfg.Actuator.TimeoutSeconds) * time.Second,
	}, nil
}

func (c *commandContext) buildRunner(store ledger.Store, exec executor.Executor, logger *slog.Logger) (*runner.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return runner.New(runner.Options{
		Config:   cfg,
		Ledger:   store,
		Executor: exec,
		Logger:   logger,
		Notifier: notify.NewService(cfg),
	}), nil
}

func (c *commandContext) buildLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}
