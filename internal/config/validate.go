package config

import "errors"

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	if c.Hand.Port <= 0 || c.Hand.Port > 65535 {
		return errors.New("hand.port must be between 1 and 65535")
	}
	if c.Connection.MaxAttempts <= 0 {
		return errors.New("connection.max_attempts must be positive")
	}
	if c.Connection.CommandTimeoutSeconds < 0 {
		return errors.New("connection.command_timeout must not be negative")
	}
	if c.Timing.SettleDelaySeconds < 0 {
		return errors.New("timing.settle_delay must not be negative")
	}
	if c.Timing.RetryDelaySeconds < 0 {
		return errors.New("timing.retry_delay must not be negative")
	}
	if c.Timing.StopGraceSeconds < 0 {
		return errors.New("timing.stop_grace must not be negative")
	}
	if c.Timing.QuitPauseSeconds < 0 {
		return errors.New("timing.quit_pause must not be negative")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	return nil
}
