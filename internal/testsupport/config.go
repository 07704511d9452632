// Package testsupport provides shared fixtures for grasp tests: fast-timing
// configurations and a stub acknowledgment server speaking the wire
// protocol.
package testsupport

import (
	"path/filepath"
	"testing"

	"grasp/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces an attach-mode config with per-test temp directories
// and sub-second delays so suites stay fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Hand.Attach = true
	cfg.Connection.MaxAttempts = 3
	cfg.Connection.CommandTimeoutSeconds = 2
	cfg.Timing.SettleDelaySeconds = 0
	cfg.Timing.RetryDelaySeconds = 0.02
	cfg.Timing.StopGraceSeconds = 0.5
	cfg.Timing.QuitPauseSeconds = 0
	cfg.Journal.Dir = filepath.Join(t.TempDir(), "journal")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPort points the config at the given server port.
func WithPort(port int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Hand.Host = "127.0.0.1"
		cfg.Hand.Port = port
	}
}

// WithJournalDisabled turns off command journaling.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}
