package ffmpeg

import (
	"strconv"
	"time"
)

// StreamSpec renders the arguments describing one output stream.
type StreamSpec interface {
	StreamArgs() []string
}

// Input describes one ffmpeg input. Seek and Limit are emitted as -ss and -t
// before the -i flag, so seeking happens on the demuxer side.
type Input struct {
	Source string
	Seek   time.Duration
	Limit  time.Duration
	Extra  []string
}

func (in Input) args() []string {
	var args []string
	if in.Seek > 0 {
		args = append(args, "-ss", formatSeconds(in.Seek))
	}
	if in.Limit > 0 {
		args = append(args, "-t", formatSeconds(in.Limit))
	}
	args = append(args, in.Extra...)
	args = append(args, "-i", in.Source)
	return args
}

// FormatSpec selects the output container format.
type FormatSpec struct {
	Name  string
	Extra []string
}

func (f FormatSpec) args() []string {
	args := []string{"-f", f.Name}
	args = append(args, f.Extra...)
	return args
}

// Output describes one ffmpeg output: stream selections, optional container
// format, extra arguments, and the target path ("-" for stdout).
type Output struct {
	Target  string
	Streams []StreamSpec
	Format  *FormatSpec
	Extra   []string
}

func (o Output) args() []string {
	var args []string
	for _, s := range o.Streams {
		args = append(args, s.StreamArgs()...)
	}
	if o.Format != nil {
		args = append(args, o.Format.args()...)
	}
	args = append(args, o.Extra...)
	args = append(args, o.Target)
	return args
}

// Command is a full ffmpeg invocation: all inputs followed by all outputs.
// Args is deterministic; identical values always yield identical argument
// vectors.
type Command struct {
	Inputs  []Input
	Outputs []Output
}

// Convert builds the common single-input single-output command.
func Convert(source string, output Output) Command {
	return Command{
		Inputs:  []Input{{Source: source}},
		Outputs: []Output{output},
	}
}

// Args renders the argument vector, without the binary name or the standard
// flag prefix (the runner supplies those).
func (c Command) Args() []string {
	var args []string
	for _, in := range c.Inputs {
		args = append(args, in.args()...)
	}
	for _, out := range c.Outputs {
		args = append(args, out.args()...)
	}
	return args
}

// VideoSpec describes an output video stream. An empty Encoder disables
// video ("-vn"); "copy" passes the stream through untouched.
type VideoSpec struct {
	Encoder string
	Scale   string // "W:H", either may be -1 to preserve aspect ratio
	BitRate string
	Frames  int
	Extra   []string
}

func (v VideoSpec) StreamArgs() []string {
	if v.Encoder == "" {
		return []string{"-vn"}
	}
	args := []string{"-c:v", v.Encoder}
	if v.Scale != "" {
		args = append(args, "-vf", "scale="+v.Scale)
	}
	if v.BitRate != "" {
		args = append(args, "-b:v", v.BitRate)
	}
	if v.Frames > 0 {
		args = append(args, "-frames:v", strconv.Itoa(v.Frames))
	}
	args = append(args, v.Extra...)
	return args
}

// AudioSpec describes an output audio stream. An empty Encoder disables
// audio ("-an"); "copy" passes the stream through untouched.
type AudioSpec struct {
	Encoder  string
	Channels int
	BitRate  string
	Extra    []string
}

func (a AudioSpec) StreamArgs() []string {
	if a.Encoder == "" {
		return []string{"-an"}
	}
	args := []string{"-c:a", a.Encoder}
	if a.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(a.Channels))
	}
	if a.BitRate != "" {
		args = append(args, "-b:a", a.BitRate)
	}
	args = append(args, a.Extra...)
	return args
}

// SubtitleSpec describes output subtitle handling. An empty Encoder disables
// subtitles ("-sn"); "copy" passes them through untouched.
type SubtitleSpec struct {
	Encoder string
}

func (s SubtitleSpec) StreamArgs() []string {
	if s.Encoder == "" {
		return []string{"-sn"}
	}
	return []string{"-c:s", s.Encoder}
}

// Common stream selections.
var (
	NoVideo       = VideoSpec{}
	CopyVideo     = VideoSpec{Encoder: "copy"}
	NoAudio       = AudioSpec{}
	CopyAudio     = AudioSpec{Encoder: "copy"}
	NoSubtitles   = SubtitleSpec{}
	CopySubtitles = SubtitleSpec{Encoder: "copy"}
)

// formatSeconds renders a duration as fractional seconds the way ffmpeg
// expects position arguments.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
