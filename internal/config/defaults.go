package config

const (
	defaultHost                  = "localhost"
	defaultPort                  = 12321
	defaultMaxAttempts           = 5
	defaultCommandTimeoutSeconds = 5.0
	defaultSettleDelaySeconds    = 2.0
	defaultRetryDelaySeconds     = 1.0
	defaultStopGraceSeconds      = 2.0
	defaultQuitPauseSeconds      = 0.2
	defaultJournalDir            = "~/.local/share/grasp"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Hand: Hand{
			Host: defaultHost,
			Port: defaultPort,
		},
		Connection: Connection{
			MaxAttempts:           defaultMaxAttempts,
			CommandTimeoutSeconds: defaultCommandTimeoutSeconds,
		},
		Timing: Timing{
			SettleDelaySeconds: defaultSettleDelaySeconds,
			RetryDelaySeconds:  defaultRetryDelaySeconds,
			StopGraceSeconds:   defaultStopGraceSeconds,
			QuitPauseSeconds:   defaultQuitPauseSeconds,
		},
		Journal: Journal{
			Enabled: true,
			Dir:     defaultJournalDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
