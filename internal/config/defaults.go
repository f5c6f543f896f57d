package config

const (
	defaultDataDir          = "~/.local/share/crosslist"
	defaultLogDir           = "~/.local/share/crosslist/logs"
	defaultLedgerBackend    = "file"
	defaultLedgerPath       = "~/.local/share/crosslist/ledger.txt"
	defaultMaxActiveItems   = 100
	defaultDailyRelist      = 4
	defaultDailyNew         = 10
	defaultExportRowCeiling = 3000
	defaultRetryAttempts    = 3
	defaultRetryInitialSec  = 5
	defaultRetryMaxSec      = 60
	defaultActuatorTimeout  = 300
	defaultNotifyTimeout    = 10
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Ledger: Ledger{
			Backend: defaultLedgerBackend,
			Path:    defaultLedgerPath,
		},
		Posting: Posting{
			MaxActiveItems: defaultMaxActiveItems,
			DailyRelist:    defaultDailyRelist,
			DailyNew:       defaultDailyNew,
		},
		Limits: Limits{
			ExportRowCeiling: defaultExportRowCeiling,
		},
		Retry: Retry{
			Attempts:            defaultRetryAttempts,
			InitialDelaySeconds: defaultRetryInitialSec,
			MaxDelaySeconds:     defaultRetryMaxSec,
		},
		Actuator: Actuator{
			TimeoutSeconds: defaultActuatorTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Runs:           true,
			Errors:         true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
