package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Hand contains connection and executable settings for the hand controller
// server process.
type Hand struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Executable string `toml:"executable"`
	Attach     bool   `toml:"attach"`
}

// Connection contains retry and timeout settings for the control channel.
type Connection struct {
	MaxAttempts           int     `toml:"max_attempts"`
	CommandTimeoutSeconds float64 `toml:"command_timeout"`
}

// Timing contains the fixed delays used during startup and teardown.
// All values are in seconds; fractions are allowed.
type Timing struct {
	SettleDelaySeconds float64 `toml:"settle_delay"`
	RetryDelaySeconds  float64 `toml:"retry_delay"`
	StopGraceSeconds   float64 `toml:"stop_grace"`
	QuitPauseSeconds   float64 `toml:"quit_pause"`
}

// Journal contains configuration for the local command journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config centralizes every knob the CLI and controller need.
type Config struct {
	Hand       Hand       `toml:"hand"`
	Connection Connection `toml:"connection"`
	Timing     Timing     `toml:"timing"`
	Journal    Journal    `toml:"journal"`
	Logging    Logging    `toml:"logging"`
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/grasp/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return
// value is the resolved config path; the third reports whether the file
// existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// Address returns the host:port dial target for the hand controller server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Hand.Host, c.Hand.Port)
}

// SettleDelay is the pause between spawning the server process and the first
// connection attempt.
func (c *Config) SettleDelay() time.Duration {
	return secondsToDuration(c.Timing.SettleDelaySeconds)
}

// RetryDelay is the fixed pause between connection attempts.
func (c *Config) RetryDelay() time.Duration {
	return secondsToDuration(c.Timing.RetryDelaySeconds)
}

// StopGrace is how long the supervisor waits after SIGTERM before escalating
// to SIGKILL.
func (c *Config) StopGrace() time.Duration {
	return secondsToDuration(c.Timing.StopGraceSeconds)
}

// QuitPause is the pause after sending QUIT before the socket is closed.
func (c *Config) QuitPause() time.Duration {
	return secondsToDuration(c.Timing.QuitPauseSeconds)
}

// CommandTimeout bounds a single send/acknowledge round trip. Zero disables
// the deadline.
func (c *Config) CommandTimeout() time.Duration {
	return secondsToDuration(c.Connection.CommandTimeoutSeconds)
}

// EnsureDirectories creates the directories the controller writes to.
func (c *Config) EnsureDirectories() error {
	if c.Journal.Dir != "" {
		if err := os.MkdirAll(c.Journal.Dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Journal.Dir, err)
		}
	}
	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
