package main

import (
	"context"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"grasp/internal/config"
	"grasp/internal/hand"
	"grasp/internal/logging"
)

type commandContext struct {
	configFlag *string
	attachFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, attachFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		attachFlag: attachFlag,
	}
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
		if c.attachFlag != nil && *c.attachFlag {
			cfg.Hand.Attach = true
		}
		c.config = cfg
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
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withController builds a controller, runs fn against it, and guarantees
// teardown on every exit path including SIGINT/SIGTERM delivered while a
// command is in flight.
func (c *commandContext) withController(parent context.Context, fn func(context.Context, *hand.Controller) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controller, err := hand.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer controller.Close()

	return fn(ctx, controller)
}
