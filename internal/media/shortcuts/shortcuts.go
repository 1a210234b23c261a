package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"avtool/internal/logging"
	"avtool/internal/media/ffmpeg"
	"avtool/internal/media/probe"
)

var (
	// ErrUnsupportedFormat reports a thumbnail format outside the supported
	// set (png, jpg, gif, tiff, bmp).
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrTargetLocked reports that another conversion already holds the lock
	// for the requested target path.
	ErrTargetLocked = errors.New("target is locked by another process")
)

// thumbnailEncoders maps an image format name to the ffmpeg encoder that
// produces it. jpg is special: the encoder is called mjpeg.
var thumbnailEncoders = map[string]string{
	"png":  "png",
	"jpg":  "mjpeg",
	"gif":  "gif",
	"tiff": "tiff",
	"bmp":  "bmp",
}

// Option configures the toolkit.
type Option func(*Toolkit)

// WithLogger attaches a logger for per-operation records.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Toolkit bundles the common media operations on top of a runner. All
// methods are safe for concurrent use; operations that write a file take an
// advisory lock on the target so two processes cannot clobber each other.
type Toolkit struct {
	runner *ffmpeg.Runner
	logger *slog.Logger
}

// New constructs a toolkit backed by the given runner.
func New(runner *ffmpeg.Runner, opts ...Option) *Toolkit {
	toolkit := &Toolkit{runner: runner, logger: logging.Discard()}
	for _, opt := range opts {
		opt(toolkit)
	}
	return toolkit
}

// Inspect probes the source and returns its parsed description.
func (t *Toolkit) Inspect(ctx context.Context, source string) (*probe.MediaInfo, error) {
	output, err := t.runner.FFprobe(ctx, "-show_format", "-show_streams", source)
	if err != nil {
		return nil, err
	}
	return probe.Parse(output)
}

// Thumbnail extracts a single frame at the given position and returns the
// encoded image bytes. Supported formats are png, jpg, gif, tiff and bmp.
func (t *Toolkit) Thumbnail(ctx context.Context, source string, seek time.Duration, format string) ([]byte, error) {
	encoder, ok := thumbnailEncoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	video := ffmpeg.VideoSpec{Encoder: encoder, Frames: 1}
	if format == "tiff" {
		// The tiff encoder defaults to a pixel format many viewers reject.
		video.Extra = []string{"-pix_fmt", "rgb24"}
	}

	imageFormat := ffmpeg.Image2()
	cmd := ffmpeg.Command{
		Inputs: []ffmpeg.Input{{Source: source, Seek: seek}},
		Outputs: []ffmpeg.Output{{
			Target:  "-",
			Streams: []ffmpeg.StreamSpec{video, ffmpeg.NoAudio, ffmpeg.NoSubtitles},
			Format:  &imageFormat,
		}},
	}

	t.logger.Info("extracting thumbnail",
		logging.String("source", source),
		logging.String("format", format),
		logging.Duration("seek", seek),
	)
	return t.runner.FFmpeg(ctx, cmd.Args()...)
}

// ConvertOptions tune the transcoding shortcuts. Zero values defer to the
// encoder defaults.
type ConvertOptions struct {
	CRF          int
	Preset       string // libx264/libx265 speed preset
	Scale        string // "W:H", either may be -1 to preserve aspect ratio
	VideoBitRate string
	AudioBitRate string
}

// ConvertToWebM transcodes the source into a WebM file with VP9 video and
// Opus stereo audio. Subtitles are dropped; WebM cannot carry them all.
func (t *Toolkit) ConvertToWebM(ctx context.Context, source, target string, opts ConvertOptions) error {
	video := ffmpeg.VP9(opts.CRF)
	video.Scale = opts.Scale
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{video, ffmpeg.Opus(2, opts.AudioBitRate), ffmpeg.NoSubtitles},
		Format:  formatPtr(ffmpeg.WebM()),
	})
}

// ConvertToH264 transcodes the source into an MP4 file with H.264 video and
// stereo AAC audio, with the moov atom relocated for progressive playback.
func (t *Toolkit) ConvertToH264(ctx context.Context, source, target string, opts ConvertOptions) error {
	video := ffmpeg.H264(opts.Preset, opts.CRF)
	video.Scale = opts.Scale
	video.BitRate = opts.VideoBitRate
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{video, ffmpeg.AAC(2, opts.AudioBitRate), ffmpeg.NoSubtitles},
		Format:  formatPtr(ffmpeg.MP4(true)),
	})
}

// ConvertToHEVC transcodes the source into an MP4 file with H.265 video and
// stereo AAC audio.
func (t *Toolkit) ConvertToHEVC(ctx context.Context, source, target string, opts ConvertOptions) error {
	video := ffmpeg.H265(opts.Preset, opts.CRF)
	video.Scale = opts.Scale
	video.BitRate = opts.VideoBitRate
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{video, ffmpeg.AAC(2, opts.AudioBitRate), ffmpeg.NoSubtitles},
		Format:  formatPtr(ffmpeg.MP4(true)),
	})
}

// ConvertToAAC re-encodes the source's audio as AAC in an MP4 container,
// discarding video and subtitles.
func (t *Toolkit) ConvertToAAC(ctx context.Context, source, target string, opts ConvertOptions) error {
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{ffmpeg.NoVideo, ffmpeg.AAC(0, opts.AudioBitRate), ffmpeg.NoSubtitles},
		Format:  formatPtr(ffmpeg.MP4(true)),
	})
}

// ConvertToOpus re-encodes the source's audio as Opus in an Ogg container,
// discarding video and subtitles.
func (t *Toolkit) ConvertToOpus(ctx context.Context, source, target string, opts ConvertOptions) error {
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{ffmpeg.NoVideo, ffmpeg.Opus(0, opts.AudioBitRate), ffmpeg.NoSubtitles},
		Format:  formatPtr(ffmpeg.Ogg()),
	})
}

// ExtractAudio copies or re-encodes the source's audio into the target,
// dropping video, subtitles, and chapter markers. An empty codec copies the
// audio stream as-is; an empty format lets ffmpeg infer the container from
// the target extension.
func (t *Toolkit) ExtractAudio(ctx context.Context, source, target, codec, format string) error {
	audio := ffmpeg.CopyAudio
	if codec != "" {
		audio = ffmpeg.AudioSpec{Encoder: codec}
	}
	output := ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{ffmpeg.NoVideo, audio, ffmpeg.NoSubtitles},
		Extra:   []string{"-map_chapters", "-1"},
	}
	if format != "" {
		output.Format = &ffmpeg.FormatSpec{Name: format}
	}
	return t.convert(ctx, source, target, output)
}

// RemoveAudio copies the source into the target without its audio streams or
// chapter markers. Subtitles are copied unless keepSubtitles is false.
func (t *Toolkit) RemoveAudio(ctx context.Context, source, target string, keepSubtitles bool) error {
	subtitles := ffmpeg.CopySubtitles
	if !keepSubtitles {
		subtitles = ffmpeg.NoSubtitles
	}
	return t.convert(ctx, source, target, ffmpeg.Output{
		Target:  target,
		Streams: []ffmpeg.StreamSpec{ffmpeg.CopyVideo, ffmpeg.NoAudio, subtitles},
		Extra:   []string{"-map_chapters", "-1"},
	})
}

// convert runs a single-input single-output conversion under the target's
// advisory lock.
func (t *Toolkit) convert(ctx context.Context, source, target string, output ffmpeg.Output) error {
	unlock, err := lockTarget(target)
	if err != nil {
		return err
	}
	defer unlock()

	cmd := ffmpeg.Convert(source, output)
	started := time.Now()
	t.logger.Info("converting",
		logging.String("source", source),
		logging.String("target", target),
	)
	if _, err := t.runner.FFmpeg(ctx, cmd.Args()...); err != nil {
		return err
	}
	t.logger.Info("conversion finished",
		logging.String("target", target),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// lockTarget takes an advisory lock alongside the target path. The lock file
// is removed again on release; a stale file left by a crash is harmless.
func lockTarget(target string) (func(), error) {
	lockPath := target + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrTargetLocked, target)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}

func formatPtr(f ffmpeg.FormatSpec) *ffmpeg.FormatSpec {
	return &f
}
