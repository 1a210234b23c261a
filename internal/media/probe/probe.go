package probe

import (
	"time"
)

// Kind identifies a stream's elementary type as reported by ffprobe.
// Unrecognized values are preserved verbatim so newer tool versions remain
// representable.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindData     Kind = "data"
)

// Known reports whether the kind is one of the enumerated stream types.
func (k Kind) Known() bool {
	switch k {
	case KindVideo, KindAudio, KindSubtitle, KindData:
		return true
	}
	return false
}

// Codec describes the codec used in a stream.
type Codec struct {
	Name        string
	Type        Kind
	Description string
	Profile     string
}

// Stream describes one elementary track in the container. Fields that
// ffprobe reports only for certain stream types are zero for the others;
// keys this package does not model explicitly are retained in Extra.
type Stream struct {
	Index int
	Type  Kind
	Codec Codec

	TimeBase   string
	StartTime  *time.Duration
	Duration   *time.Duration
	DurationTS *int64
	Frames     *int64
	BitRate    *int64

	// Video
	Width              int
	Height             int
	DisplayAspectRatio string
	PixelFormat        string
	FrameRate          string // avg_frame_rate as reported, e.g. "24/1"

	// Audio
	SampleRate    *int64
	Channels      int
	ChannelLayout string
	SampleFormat  string

	Tags  map[string]string
	Extra map[string]any
}

// Language returns the stream's language tag, if any.
func (s Stream) Language() string {
	return s.Tags["language"]
}

// Format describes container-level metadata.
type Format struct {
	Name        string
	Names       []string
	Description string
	StartTime   *time.Duration
	Duration    *time.Duration
	Size        *int64
	BitRate     *int64
	Tags        map[string]string
	Extra       map[string]any
}

// MediaInfo is the complete parse result for one probed media object. It is
// an immutable snapshot; nothing mutates it after Parse returns.
type MediaInfo struct {
	Format  Format
	Streams []Stream
}

// VideoStreams returns the video streams in container order.
func (m *MediaInfo) VideoStreams() []Stream {
	return m.streamsOf(KindVideo)
}

// AudioStreams returns the audio streams in container order.
func (m *MediaInfo) AudioStreams() []Stream {
	return m.streamsOf(KindAudio)
}

// SubtitleStreams returns the subtitle streams in container order.
func (m *MediaInfo) SubtitleStreams() []Stream {
	return m.streamsOf(KindSubtitle)
}

// HasVideo reports whether at least one video stream is present.
func (m *MediaInfo) HasVideo() bool {
	return len(m.VideoStreams()) > 0
}

// HasAudio reports whether at least one audio stream is present.
func (m *MediaInfo) HasAudio() bool {
	return len(m.AudioStreams()) > 0
}

// HasSubtitles reports whether at least one subtitle stream is present.
func (m *MediaInfo) HasSubtitles() bool {
	return len(m.SubtitleStreams()) > 0
}

func (m *MediaInfo) streamsOf(kind Kind) []Stream {
	var result []Stream
	for _, s := range m.Streams {
		if s.Type == kind {
			result = append(result, s)
		}
	}
	return result
}
