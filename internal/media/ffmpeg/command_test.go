package ffmpeg

import (
	"reflect"
	"testing"
	"time"
)

func TestCommandArgsOrdering(t *testing.T) {
	cmd := Command{
		Inputs: []Input{{
			Source: "in.mkv",
			Seek:   2 * time.Second,
			Limit:  60 * time.Second,
		}},
		Outputs: []Output{{
			Target: "out.mp4",
			Streams: []StreamSpec{
				H264("fast", 23),
				AAC(2, "128k"),
				NoSubtitles,
			},
			Format: &FormatSpec{Name: "mp4", Extra: []string{"-movflags", "faststart"}},
			Extra:  []string{"-map_chapters", "-1"},
		}},
	}

	want := []string{
		"-ss", "2", "-t", "60", "-i", "in.mkv",
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-ac", "2", "-b:a", "128k",
		"-sn",
		"-f", "mp4", "-movflags", "faststart",
		"-map_chapters", "-1",
		"out.mp4",
	}
	if got := cmd.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestCommandArgsDeterministic(t *testing.T) {
	build := func() Command {
		return Convert("a.mkv", Output{
			Target:  "b.webm",
			Streams: []StreamSpec{VP9(0), Opus(2, "96k"), NoSubtitles},
			Format:  &FormatSpec{Name: "webm"},
		})
	}
	first := build().Args()
	second := build().Args()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical commands produced different args:\n%q\n%q", first, second)
	}
}

func TestFractionalSeek(t *testing.T) {
	in := Input{Source: "x.mkv", Seek: 5024 * time.Millisecond}
	want := []string{"-ss", "5.024", "-i", "x.mkv"}
	if got := in.args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected input args: %q", got)
	}
}

func TestStreamDisableAndCopy(t *testing.T) {
	cases := []struct {
		name string
		spec StreamSpec
		want []string
	}{
		{"no video", NoVideo, []string{"-vn"}},
		{"copy video", CopyVideo, []string{"-c:v", "copy"}},
		{"no audio", NoAudio, []string{"-an"}},
		{"copy audio", CopyAudio, []string{"-c:a", "copy"}},
		{"no subtitles", NoSubtitles, []string{"-sn"}},
		{"copy subtitles", CopySubtitles, []string{"-c:s", "copy"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.spec.StreamArgs(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVideoSpecScaleAndFrames(t *testing.T) {
	spec := VideoSpec{Encoder: "png", Scale: "-1:480", Frames: 1}
	want := []string{"-c:v", "png", "-vf", "scale=-1:480", "-frames:v", "1"}
	if got := spec.StreamArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCodecPresetDefaults(t *testing.T) {
	vp9 := VP9(0)
	want := []string{"-c:v", "libvpx-vp9", "-crf", "31", "-b:v", "0", "-quality", "good"}
	if got := vp9.StreamArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("vp9 default: got %q, want %q", got, want)
	}

	av1 := AV1(0)
	want = []string{"-c:v", "libaom-av1", "-crf", "30", "-b:v", "0", "-strict", "experimental"}
	if got := av1.StreamArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("av1 default: got %q, want %q", got, want)
	}

	// Omitted preset/crf must not emit flags at all.
	h264 := H264("", 0)
	want = []string{"-c:v", "libx264"}
	if got := h264.StreamArgs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("h264 bare: got %q, want %q", got, want)
	}
}

func TestFormatSpecs(t *testing.T) {
	mp4 := MP4(true)
	want := []string{"-f", "mp4", "-movflags", "faststart"}
	if got := mp4.args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("mp4: got %q, want %q", got, want)
	}
	if got := WebM().args(); !reflect.DeepEqual(got, []string{"-f", "webm"}) {
		t.Fatalf("webm: got %q", got)
	}
	if got := Image2().args(); !reflect.DeepEqual(got, []string{"-f", "image2"}) {
		t.Fatalf("image2: got %q", got)
	}
}
