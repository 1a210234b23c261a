package caps

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"avtool/internal/media/ffmpeg"
)

// Kind mirrors the codec kind column of ffmpeg's capability listings.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
)

// Codec describes a codec known to ffmpeg. Knowing a codec does not imply it
// can be encoded; see Encoder for that.
type Codec struct {
	Name        string
	Type        Kind
	Description string
	CanDecode   bool
	CanEncode   bool
	IntraOnly   bool
	Lossy       bool
	Lossless    bool
}

// Encoder describes an available encoder.
type Encoder struct {
	Name        string
	Type        Kind
	Description string
}

// Format describes a container format known to ffmpeg.
type Format struct {
	Name        string
	Description string
	CanMux      bool
	CanDemux    bool
}

// Caps discovers what the configured ffmpeg/ffprobe binaries support. Each
// listing is fetched once per Caps value and cached; construct a fresh value
// to re-discover.
type Caps struct {
	runner *ffmpeg.Runner

	codecsOnce sync.Once
	codecs     map[string]Codec
	codecsErr  error

	encodersOnce sync.Once
	encoders     map[string]Encoder
	encodersErr  error

	formatsOnce sync.Once
	formats     map[string]Format
	formatsErr  error

	ffmpegVersionOnce sync.Once
	ffmpegVersion     string
	ffmpegVersionErr  error

	ffprobeVersionOnce sync.Once
	ffprobeVersion     string
	ffprobeVersionErr  error
}

// New constructs a Caps backed by the given runner.
func New(runner *ffmpeg.Runner) *Caps {
	return &Caps{runner: runner}
}

// Codecs lists the codecs the ffmpeg binary knows about, keyed by name.
func (c *Caps) Codecs(ctx context.Context) (map[string]Codec, error) {
	c.codecsOnce.Do(func() {
		output, err := c.runner.FFmpeg(ctx, "-codecs")
		if err != nil {
			c.codecsErr = err
			return
		}
		c.codecs = make(map[string]Codec)
		forEachCapabilityLine(string(output), func(flags, name, desc string) {
			codec, ok := parseCodec(flags, name, desc)
			if ok {
				c.codecs[codec.Name] = codec
			}
		})
	})
	return c.codecs, c.codecsErr
}

// Encoders lists the available encoders, keyed by name.
func (c *Caps) Encoders(ctx context.Context) (map[string]Encoder, error) {
	c.encodersOnce.Do(func() {
		output, err := c.runner.FFmpeg(ctx, "-encoders")
		if err != nil {
			c.encodersErr = err
			return
		}
		c.encoders = make(map[string]Encoder)
		forEachCapabilityLine(string(output), func(flags, name, desc string) {
			kind, ok := parseKind(flags)
			if !ok {
				return
			}
			c.encoders[name] = Encoder{Name: name, Type: kind, Description: desc}
		})
	})
	return c.encoders, c.encodersErr
}

// Formats lists the container formats, keyed by name.
func (c *Caps) Formats(ctx context.Context) (map[string]Format, error) {
	c.formatsOnce.Do(func() {
		output, err := c.runner.FFmpeg(ctx, "-formats")
		if err != nil {
			c.formatsErr = err
			return
		}
		c.formats = make(map[string]Format)
		forEachCapabilityLine(string(output), func(flags, name, desc string) {
			c.formats[name] = Format{
				Name:        name,
				Description: desc,
				CanMux:      strings.ContainsRune(flags, 'E'),
				CanDemux:    strings.ContainsRune(flags, 'D'),
			}
		})
	})
	return c.formats, c.formatsErr
}

// FFmpegVersion returns the installed ffmpeg version, e.g. "6.1.1".
func (c *Caps) FFmpegVersion(ctx context.Context) (string, error) {
	c.ffmpegVersionOnce.Do(func() {
		output, err := c.runner.FFmpeg(ctx, "-version")
		if err != nil {
			c.ffmpegVersionErr = err
			return
		}
		c.ffmpegVersion, c.ffmpegVersionErr = parseVersion(string(output))
	})
	return c.ffmpegVersion, c.ffmpegVersionErr
}

// FFprobeVersion returns the installed ffprobe version.
func (c *Caps) FFprobeVersion(ctx context.Context) (string, error) {
	c.ffprobeVersionOnce.Do(func() {
		output, err := c.runner.FFprobe(ctx, "-version")
		if err != nil {
			c.ffprobeVersionErr = err
			return
		}
		c.ffprobeVersion, c.ffprobeVersionErr = parseVersion(string(output))
	})
	return c.ffprobeVersion, c.ffprobeVersionErr
}

// forEachCapabilityLine walks an ffmpeg listing, skipping the legend that
// precedes the "----" separator, and hands each entry's flag column, name,
// and description to fn.
func forEachCapabilityLine(output string, fn func(flags, name, desc string)) {
	parsing := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "--") {
			parsing = true
			continue
		}
		if !parsing {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		desc := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		desc = strings.TrimSpace(strings.TrimPrefix(desc, fields[1]))
		fn(fields[0], fields[1], desc)
	}
}

// parseCodec decodes the positional flag column of `ffmpeg -codecs`:
// [D?][E?][V|A|S|D][I?][L?][S?].
func parseCodec(flags, name, desc string) (Codec, bool) {
	if len(flags) < 6 {
		return Codec{}, false
	}
	kind, ok := kindLetter(flags[2])
	if !ok {
		return Codec{}, false
	}
	return Codec{
		Name:        name,
		Type:        kind,
		Description: desc,
		CanDecode:   flags[0] == 'D',
		CanEncode:   flags[1] == 'E',
		IntraOnly:   flags[3] == 'I',
		Lossy:       flags[4] == 'L',
		Lossless:    flags[5] == 'S',
	}, true
}

func parseKind(flags string) (Kind, bool) {
	switch {
	case strings.ContainsRune(flags, 'V'):
		return KindVideo, true
	case strings.ContainsRune(flags, 'A'):
		return KindAudio, true
	case strings.ContainsRune(flags, 'S'):
		return KindSubtitle, true
	}
	return "", false
}

func kindLetter(b byte) (Kind, bool) {
	switch b {
	case 'V':
		return KindVideo, true
	case 'A':
		return KindAudio, true
	case 'S':
		return KindSubtitle, true
	}
	return "", false
}

// parseVersion extracts the version token from the first line of `-version`
// output ("ffmpeg version 6.1.1 Copyright ...").
func parseVersion(output string) (string, error) {
	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[1] != "version" {
		return "", fmt.Errorf("unrecognized version banner %q", line)
	}
	return fields[2], nil
}
