package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	c.Hand.Host = strings.TrimSpace(c.Hand.Host)
	if c.Hand.Host == "" {
		c.Hand.Host = defaultHost
	}
	if c.Hand.Executable, err = expandPath(strings.TrimSpace(c.Hand.Executable)); err != nil {
		return fmt.Errorf("hand.executable: %w", err)
	}
	if strings.TrimSpace(c.Journal.Dir) == "" {
		c.Journal.Dir = defaultJournalDir
	}
	if c.Journal.Dir, err = expandPath(c.Journal.Dir); err != nil {
		return fmt.Errorf("journal.dir: %w", err)
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
