package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"filesorter/internal/config"
	"filesorter/internal/history"
	"filesorter/internal/logging"
	"filesorter/internal/organizer"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	noColor   bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	history *history.Store
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		current := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: "*.log",
			Exclude: []string{current},
		})
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openHistory returns the run history store, or nil when history is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	if c.history != nil {
		return c.history, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	c.history = store
	return store, nil
}

// recorder adapts openHistory for the organizer. A disabled or unreadable
// history yields a nil recorder; the run proceeds either way.
func (c *commandContext) recorder(logger *slog.Logger) organizer.Recorder {
	store, err := c.openHistory()
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run will not appear in `filesorter history`"),
		)
		return nil
	}
	if store == nil {
		return nil
	}
	return store
}

func (c *commandContext) close() {
	if c.history != nil {
		_ = c.history.Close()
		c.history = nil
	}
}

// resolveRoots applies config fallbacks to the --source/--dest flags.
func (c *commandContext) resolveRoots(source, dest string) (organizer.Request, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return organizer.Request{}, err
	}
	req := organizer.Request{
		SourceRoot:      firstNonEmpty(source, cfg.Paths.SourceDir),
		DestinationRoot: firstNonEmpty(dest, cfg.Paths.DestinationDir),
	}
	if req.SourceRoot == "" {
		return req, errors.New("source directory required: pass --source or set paths.source_dir")
	}
	if req.DestinationRoot == "" {
		return req, errors.New("destination directory required: pass --dest or set paths.destination_dir")
	}
	for _, p := range []*string{&req.SourceRoot, &req.DestinationRoot} {
		expanded, err := config.ExpandPath(*p)
		if err != nil {
			return req, err
		}
		*p = expanded
	}
	return req, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
