package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables that override the configured binary paths.
const (
	EnvFFmpeg  = "AVTOOL_FFMPEG"
	EnvFFprobe = "AVTOOL_FFPROBE"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeThumbnail()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTools() error {
	if env := strings.TrimSpace(os.Getenv(EnvFFmpeg)); env != "" {
		c.Tools.FFmpeg = env
	}
	if env := strings.TrimSpace(os.Getenv(EnvFFprobe)); env != "" {
		c.Tools.FFprobe = env
	}

	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}

	// Bare names resolve through PATH; anything with a separator or home
	// prefix is treated as an explicit location and expanded.
	var err error
	if isExplicitPath(c.Tools.FFmpeg) {
		if c.Tools.FFmpeg, err = expandPath(c.Tools.FFmpeg); err != nil {
			return fmt.Errorf("tools.ffmpeg: %w", err)
		}
	}
	if isExplicitPath(c.Tools.FFprobe) {
		if c.Tools.FFprobe, err = expandPath(c.Tools.FFprobe); err != nil {
			return fmt.Errorf("tools.ffprobe: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeThumbnail() {
	c.Thumbnail.Format = strings.ToLower(strings.TrimSpace(c.Thumbnail.Format))
	if c.Thumbnail.Format == "" {
		c.Thumbnail.Format = defaultThumbnailFormat
	}
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

func isExplicitPath(value string) bool {
	return strings.ContainsAny(value, `/\`) || strings.HasPrefix(value, "~")
}
