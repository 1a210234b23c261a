package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"avtool/internal/config"
	"avtool/internal/logging"
	"avtool/internal/media/caps"
	"avtool/internal/media/ffmpeg"
	"avtool/internal/media/shortcuts"
)

// commandContext lazily materializes the shared pieces every subcommand
// needs: configuration, the logger, and the runner built from both.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
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
		level := cfg.Logging.Level
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) runner() (*ffmpeg.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	opts := []ffmpeg.Option{ffmpeg.WithLogger(logger)}
	if cfg.Tools.TimeoutSeconds > 0 {
		opts = append(opts, ffmpeg.WithTimeout(time.Duration(cfg.Tools.TimeoutSeconds)*time.Second))
	}
	return ffmpeg.New(cfg.Tools.FFmpeg, cfg.Tools.FFprobe, opts...), nil
}

func (c *commandContext) toolkit() (*shortcuts.Toolkit, error) {
	runner, err := c.runner()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return shortcuts.New(runner, shortcuts.WithLogger(logger)), nil
}

func (c *commandContext) caps() (*caps.Caps, error) {
	runner, err := c.runner()
	if err != nil {
		return nil, err
	}
	return caps.New(runner), nil
}
