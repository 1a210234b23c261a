package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedProbeData tags every schema violation found while parsing
// ffprobe output. Parsing never returns partially populated data: any
// violation fails the whole parse.
var ErrMalformedProbeData = errors.New("malformed probe data")

// Parse maps an ffprobe JSON document into a MediaInfo. Parsing is pure and
// deterministic; the same document always yields an equal result. Keys not
// modeled explicitly are retained in the Extra maps.
func Parse(data []byte) (*MediaInfo, error) {
	var doc struct {
		Format  map[string]json.RawMessage   `json:"format"`
		Streams []map[string]json.RawMessage `json:"streams"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProbeData, err)
	}
	if doc.Format == nil {
		return nil, fmt.Errorf("%w: missing format section", ErrMalformedProbeData)
	}
	if doc.Streams == nil {
		return nil, fmt.Errorf("%w: missing streams section", ErrMalformedProbeData)
	}

	format, err := parseFormat(doc.Format)
	if err != nil {
		return nil, err
	}

	streams := make([]Stream, 0, len(doc.Streams))
	seen := make(map[int]struct{}, len(doc.Streams))
	for i, raw := range doc.Streams {
		stream, err := parseStream(raw)
		if err != nil {
			return nil, fmt.Errorf("stream %d: %w", i, err)
		}
		if stream.Index < 0 {
			return nil, fmt.Errorf("%w: stream %d: negative index %d", ErrMalformedProbeData, i, stream.Index)
		}
		if _, dup := seen[stream.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate stream index %d", ErrMalformedProbeData, stream.Index)
		}
		seen[stream.Index] = struct{}{}
		streams = append(streams, stream)
	}

	return &MediaInfo{Format: format, Streams: streams}, nil
}

func parseFormat(raw map[string]json.RawMessage) (Format, error) {
	fields := newFieldReader(raw)

	var format Format
	format.Name = fields.str("format_name")
	format.Description = fields.str("format_long_name")
	if format.Name != "" {
		format.Names = strings.Split(format.Name, ",")
	}

	var err error
	if format.StartTime, err = fields.seconds("start_time"); err != nil {
		return Format{}, fmt.Errorf("format: %w", err)
	}
	if format.Duration, err = fields.seconds("duration"); err != nil {
		return Format{}, fmt.Errorf("format: %w", err)
	}
	if format.Size, err = fields.integer("size"); err != nil {
		return Format{}, fmt.Errorf("format: %w", err)
	}
	if format.BitRate, err = fields.integer("bit_rate"); err != nil {
		return Format{}, fmt.Errorf("format: %w", err)
	}
	format.Tags = fields.tags("tags")
	format.Extra = fields.rest()
	return format, nil
}

func parseStream(raw map[string]json.RawMessage) (Stream, error) {
	fields := newFieldReader(raw)

	var stream Stream
	index, err := fields.requiredInt("index")
	if err != nil {
		return Stream{}, err
	}
	stream.Index = index

	kind := Kind(fields.str("codec_type"))
	if kind == "" {
		return Stream{}, fmt.Errorf("%w: missing codec_type", ErrMalformedProbeData)
	}
	stream.Type = kind
	stream.Codec = Codec{
		Name:        fields.str("codec_name"),
		Type:        kind,
		Description: fields.str("codec_long_name"),
		Profile:     fields.str("profile"),
	}

	stream.TimeBase = fields.str("time_base")
	if stream.StartTime, err = fields.seconds("start_time"); err != nil {
		return Stream{}, err
	}
	if stream.Duration, err = fields.seconds("duration"); err != nil {
		return Stream{}, err
	}
	if stream.DurationTS, err = fields.rawInt64("duration_ts"); err != nil {
		return Stream{}, err
	}
	if stream.Frames, err = fields.integer("nb_frames"); err != nil {
		return Stream{}, err
	}
	if stream.BitRate, err = fields.integer("bit_rate"); err != nil {
		return Stream{}, err
	}

	if stream.Width, err = fields.plainInt("width"); err != nil {
		return Stream{}, err
	}
	if stream.Height, err = fields.plainInt("height"); err != nil {
		return Stream{}, err
	}
	stream.DisplayAspectRatio = fields.str("display_aspect_ratio")
	stream.PixelFormat = fields.str("pix_fmt")
	stream.FrameRate = fields.str("avg_frame_rate")

	if stream.SampleRate, err = fields.integer("sample_rate"); err != nil {
		return Stream{}, err
	}
	if stream.Channels, err = fields.plainInt("channels"); err != nil {
		return Stream{}, err
	}
	stream.ChannelLayout = fields.str("channel_layout")
	stream.SampleFormat = fields.str("sample_fmt")

	stream.Tags = fields.tags("tags")
	stream.Extra = fields.rest()
	return stream, nil
}

// fieldReader consumes known keys from a decoded JSON object; whatever is
// left over lands in the overflow map.
type fieldReader struct {
	raw  map[string]json.RawMessage
	used map[string]struct{}
}

func newFieldReader(raw map[string]json.RawMessage) *fieldReader {
	return &fieldReader{raw: raw, used: make(map[string]struct{})}
}

func (f *fieldReader) take(key string) (json.RawMessage, bool) {
	value, ok := f.raw[key]
	if ok {
		f.used[key] = struct{}{}
	}
	return value, ok
}

// str returns the key's string value, or "" when absent or not a string.
func (f *fieldReader) str(key string) string {
	value, ok := f.take(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return ""
	}
	return s
}

// seconds parses a fractional-seconds string into a duration. Absent keys
// yield nil; present but unparsable values fail.
func (f *fieldReader) seconds(key string) (*time.Duration, error) {
	value, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("%w: %s is not a string", ErrMalformedProbeData, key)
	}
	d, err := ParseSeconds(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedProbeData, key, err)
	}
	return &d, nil
}

// integer parses a numeric string field (ffprobe reports counters as JSON
// strings). Absent keys yield nil; present but unparsable values fail.
func (f *fieldReader) integer(key string) (*int64, error) {
	value, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("%w: %s is not a string", ErrMalformedProbeData, key)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedProbeData, key, err)
	}
	return &n, nil
}

// rawInt64 parses a plain JSON number field into *int64.
func (f *fieldReader) rawInt64(key string) (*int64, error) {
	value, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	var n int64
	if err := json.Unmarshal(value, &n); err != nil {
		return nil, fmt.Errorf("%w: %s is not an integer", ErrMalformedProbeData, key)
	}
	return &n, nil
}

// plainInt parses a plain JSON number field, zero when absent.
func (f *fieldReader) plainInt(key string) (int, error) {
	value, ok := f.take(key)
	if !ok {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrMalformedProbeData, key)
	}
	return n, nil
}

// requiredInt parses a plain JSON number field that must be present.
func (f *fieldReader) requiredInt(key string) (int, error) {
	value, ok := f.take(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedProbeData, key)
	}
	var n int
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrMalformedProbeData, key)
	}
	return n, nil
}

func (f *fieldReader) tags(key string) map[string]string {
	value, ok := f.take(key)
	if !ok {
		return nil
	}
	var tags map[string]string
	if err := json.Unmarshal(value, &tags); err != nil {
		return nil
	}
	return tags
}

// rest decodes every unconsumed key into the overflow map.
func (f *fieldReader) rest() map[string]any {
	if len(f.raw) == len(f.used) {
		return nil
	}
	extra := make(map[string]any, len(f.raw)-len(f.used))
	for key, value := range f.raw {
		if _, ok := f.used[key]; ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			decoded = string(value)
		}
		extra[key] = decoded
	}
	return extra
}

// ParseSeconds converts a fractional-seconds string such as "5.024000" into
// a duration without going through floating point, so values round-trip
// exactly at nanosecond resolution.
func ParseSeconds(value string) (time.Duration, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid duration %q", value)
	}

	var seconds int64
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		seconds = n
	}

	var nanos int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		n, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		for i := len(fracPart); i < 9; i++ {
			n *= 10
		}
		nanos = n
	}

	d := time.Duration(seconds)*time.Second + time.Duration(nanos)
	if negative {
		d = -d
	}
	return d, nil
}
