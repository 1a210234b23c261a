package probe

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

const sintelJSON = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "h264",
            "codec_long_name": "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10",
            "profile": "High",
            "codec_type": "video",
            "width": 1920,
            "height": 818,
            "display_aspect_ratio": "960:409",
            "pix_fmt": "yuv420p",
            "has_b_frames": 2,
            "avg_frame_rate": "24/1",
            "time_base": "1/1000",
            "tags": {
                "language": "und"
            }
        },
        {
            "index": 1,
            "codec_name": "ac3",
            "codec_long_name": "ATSC A/52A (AC-3)",
            "codec_type": "audio",
            "sample_fmt": "fltp",
            "sample_rate": "48000",
            "channels": 6,
            "channel_layout": "5.1(side)",
            "bit_rate": "640000",
            "time_base": "1/1000"
        },
        {
            "index": 2,
            "codec_name": "subrip",
            "codec_type": "subtitle",
            "tags": {
                "language": "eng"
            }
        },
        {
            "index": 3,
            "codec_name": "subrip",
            "codec_type": "subtitle",
            "tags": {
                "language": "fre"
            }
        }
    ],
    "format": {
        "filename": "sintel.mkv",
        "nb_streams": 4,
        "format_name": "matroska,webm",
        "format_long_name": "Matroska / WebM",
        "start_time": "0.000000",
        "duration": "5.024000",
        "size": "1668907",
        "bit_rate": "2657539",
        "probe_score": 100,
        "tags": {
            "encoder": "libebml v1.3.6 + libmatroska v1.4.9"
        }
    }
}`

func TestParseSintelFixture(t *testing.T) {
	info, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if info.Format.Duration == nil || *info.Format.Duration != 5024*time.Millisecond {
		t.Fatalf("unexpected duration: %v", info.Format.Duration)
	}
	if info.Format.BitRate == nil || *info.Format.BitRate != 2657539 {
		t.Fatalf("unexpected bit rate: %v", info.Format.BitRate)
	}
	if info.Format.Size == nil || *info.Format.Size != 1668907 {
		t.Fatalf("unexpected size: %v", info.Format.Size)
	}
	if info.Format.Name != "matroska,webm" {
		t.Fatalf("unexpected format name: %q", info.Format.Name)
	}
	if !reflect.DeepEqual(info.Format.Names, []string{"matroska", "webm"}) {
		t.Fatalf("unexpected format names: %q", info.Format.Names)
	}

	if !info.HasVideo() || !info.HasAudio() || !info.HasSubtitles() {
		t.Fatalf("presence predicates wrong: video=%v audio=%v subs=%v",
			info.HasVideo(), info.HasAudio(), info.HasSubtitles())
	}

	video := info.VideoStreams()
	if len(video) != 1 {
		t.Fatalf("expected 1 video stream, got %d", len(video))
	}
	if video[0].Codec.Name != "h264" {
		t.Fatalf("unexpected video codec: %q", video[0].Codec.Name)
	}
	if video[0].Width != 1920 || video[0].Height != 818 {
		t.Fatalf("unexpected resolution: %dx%d", video[0].Width, video[0].Height)
	}
	if video[0].FrameRate != "24/1" {
		t.Fatalf("unexpected frame rate: %q", video[0].FrameRate)
	}

	audio := info.AudioStreams()
	if len(audio) != 1 {
		t.Fatalf("expected 1 audio stream, got %d", len(audio))
	}
	if audio[0].Codec.Name != "ac3" {
		t.Fatalf("unexpected audio codec: %q", audio[0].Codec.Name)
	}
	if audio[0].SampleRate == nil || *audio[0].SampleRate != 48000 {
		t.Fatalf("unexpected sample rate: %v", audio[0].SampleRate)
	}
	if audio[0].Channels != 6 {
		t.Fatalf("unexpected channels: %d", audio[0].Channels)
	}
	if audio[0].BitRate == nil || *audio[0].BitRate != 640000 {
		t.Fatalf("unexpected stream bit rate: %v", audio[0].BitRate)
	}

	subs := info.SubtitleStreams()
	if len(subs) != 2 {
		t.Fatalf("expected 2 subtitle streams, got %d", len(subs))
	}
	if subs[0].Language() != "eng" || subs[1].Language() != "fre" {
		t.Fatalf("unexpected subtitle languages: %q %q", subs[0].Language(), subs[1].Language())
	}
}

func TestParseIsDeterministic(t *testing.T) {
	first, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same document twice yielded different values")
	}
}

func TestPresencePredicatesMatchFilteredViews(t *testing.T) {
	info, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.HasVideo() != (len(info.VideoStreams()) > 0) {
		t.Fatal("HasVideo disagrees with VideoStreams")
	}
	if info.HasAudio() != (len(info.AudioStreams()) > 0) {
		t.Fatal("HasAudio disagrees with AudioStreams")
	}
	if info.HasSubtitles() != (len(info.SubtitleStreams()) > 0) {
		t.Fatal("HasSubtitles disagrees with SubtitleStreams")
	}
}

func TestParsePreservesStreamOrder(t *testing.T) {
	info, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := 1; i < len(info.Streams); i++ {
		if info.Streams[i].Index <= info.Streams[i-1].Index {
			t.Fatalf("stream order not preserved: %d after %d",
				info.Streams[i].Index, info.Streams[i-1].Index)
		}
	}
	subs := info.SubtitleStreams()
	if subs[0].Index != 2 || subs[1].Index != 3 {
		t.Fatalf("filtered view order broken: %d, %d", subs[0].Index, subs[1].Index)
	}
}

func TestParseRetainsUnknownKeys(t *testing.T) {
	info, err := Parse([]byte(sintelJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, ok := info.Format.Extra["filename"]; !ok || got != "sintel.mkv" {
		t.Fatalf("format overflow missing filename: %v", info.Format.Extra)
	}
	if _, ok := info.Format.Extra["probe_score"]; !ok {
		t.Fatalf("format overflow missing probe_score: %v", info.Format.Extra)
	}
	if got, ok := info.Streams[0].Extra["has_b_frames"]; !ok || got != float64(2) {
		t.Fatalf("stream overflow missing has_b_frames: %v", info.Streams[0].Extra)
	}
}

func TestParsePreservesUnknownStreamKind(t *testing.T) {
	doc := `{
        "streams": [{"index": 0, "codec_type": "hologram", "codec_name": "volumetric1"}],
        "format": {"format_name": "future"}
    }`
	info, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Streams[0].Type != Kind("hologram") {
		t.Fatalf("unknown kind not preserved: %q", info.Streams[0].Type)
	}
	if info.Streams[0].Type.Known() {
		t.Fatal("hologram must not be a known kind")
	}
	if info.HasVideo() {
		t.Fatal("unknown kind must not count as video")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	truncated := sintelJSON[:len(sintelJSON)/2]
	if _, err := Parse([]byte(truncated)); !errors.Is(err, ErrMalformedProbeData) {
		t.Fatalf("expected ErrMalformedProbeData, got %v", err)
	}
}

func TestParseRejectsUnparsableNumbers(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			"bad format duration",
			`{"streams": [], "format": {"duration": "N/A"}}`,
		},
		{
			"bad format bit rate",
			`{"streams": [], "format": {"bit_rate": "fast"}}`,
		},
		{
			"bad stream sample rate",
			`{"streams": [{"index": 0, "codec_type": "audio", "sample_rate": "many"}], "format": {}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); !errors.Is(err, ErrMalformedProbeData) {
				t.Fatalf("expected ErrMalformedProbeData, got %v", err)
			}
		})
	}
}

func TestParseRejectsMissingSections(t *testing.T) {
	if _, err := Parse([]byte(`{"streams": []}`)); !errors.Is(err, ErrMalformedProbeData) {
		t.Fatalf("missing format: expected ErrMalformedProbeData, got %v", err)
	}
	if _, err := Parse([]byte(`{"format": {}}`)); !errors.Is(err, ErrMalformedProbeData) {
		t.Fatalf("missing streams: expected ErrMalformedProbeData, got %v", err)
	}
}

func TestParseRejectsBadIndexes(t *testing.T) {
	negative := `{"streams": [{"index": -1, "codec_type": "video"}], "format": {}}`
	if _, err := Parse([]byte(negative)); !errors.Is(err, ErrMalformedProbeData) {
		t.Fatalf("negative index: expected ErrMalformedProbeData, got %v", err)
	}
	duplicate := `{"streams": [
        {"index": 0, "codec_type": "video"},
        {"index": 0, "codec_type": "audio"}
    ], "format": {}}`
	if _, err := Parse([]byte(duplicate)); !errors.Is(err, ErrMalformedProbeData) {
		t.Fatalf("duplicate index: expected ErrMalformedProbeData, got %v", err)
	}
}

func TestParseSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"5.024000", 5024 * time.Millisecond},
		{"0.000000", 0},
		{"60", time.Minute},
		{"0.5", 500 * time.Millisecond},
		{"-1.25", -1250 * time.Millisecond},
		{".75", 750 * time.Millisecond},
		{"1.0000000005", time.Second}, // sub-nanosecond precision truncated
	}
	for _, tc := range cases {
		got, err := ParseSeconds(tc.in)
		if err != nil {
			t.Fatalf("ParseSeconds(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseSeconds(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "N/A", "1.2.3", "abc", "."} {
		if _, err := ParseSeconds(bad); err == nil {
			t.Fatalf("ParseSeconds(%q): expected error", bad)
		}
	}
}
