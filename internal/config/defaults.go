package config

const (
	defaultConfigPath      = "~/.config/filesorter/config.toml"
	projectConfigName      = "filesorter.toml"
	defaultLogDir          = "~/.local/share/filesorter/logs"
	defaultStateDir        = "~/.local/share/filesorter"
	defaultHistoryName     = "history.db"
	defaultAuditLogName    = "log.txt"
	defaultCollision       = CollisionOverwrite
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogRetention    = 30
	defaultWatchDebounceMs = 2000
	defaultNotifyTimeout   = 10
)

// Collision policies understood by the mover.
const (
	CollisionOverwrite = "overwrite"
	CollisionSkip      = "skip"
	CollisionRename    = "rename"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Organize: Organize{
			AuditLogName:    defaultAuditLogName,
			CollisionPolicy: defaultCollision,
			Lock:            true,
		},
		History: History{
			Enabled: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounceMs,
		},
	}
}
