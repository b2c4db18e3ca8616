package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be non-negative")
	}
	if c.Watch.DebounceMillis < 0 {
		return errors.New("watch.debounce_ms must be non-negative")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.CollisionPolicy {
	case CollisionOverwrite, CollisionSkip, CollisionRename:
	default:
		return fmt.Errorf("organize.collision_policy: unsupported value %q (want %s, %s, or %s)",
			c.Organize.CollisionPolicy, CollisionOverwrite, CollisionSkip, CollisionRename)
	}
	name := c.Organize.AuditLogName
	if name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("organize.audit_log_name must be a plain file name, got %q", name)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be non-negative")
	}
	return nil
}
