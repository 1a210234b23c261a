package config

const (
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultTimeoutSeconds  = 0 // no limit
	defaultThumbnailFormat = "png"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:         defaultFFmpegBinary,
			FFprobe:        defaultFFprobeBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Thumbnail: Thumbnail{
			Format: defaultThumbnailFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
