package ffmpeg

import "strconv"

// H264 builds a video spec using the libx264 encoder. Preset and CRF are
// omitted from the command line when empty/zero so the encoder defaults
// apply. See https://trac.ffmpeg.org/wiki/Encode/H.264.
func H264(preset string, crf int) VideoSpec {
	var extra []string
	if preset != "" {
		extra = append(extra, "-preset", preset)
	}
	if crf > 0 {
		extra = append(extra, "-crf", strconv.Itoa(crf))
	}
	return VideoSpec{Encoder: "libx264", Extra: extra}
}

// H265 builds a video spec using the libx265 encoder.
// See https://trac.ffmpeg.org/wiki/Encode/H.265.
func H265(preset string, crf int) VideoSpec {
	var extra []string
	if preset != "" {
		extra = append(extra, "-preset", preset)
	}
	if crf > 0 {
		extra = append(extra, "-crf", strconv.Itoa(crf))
	}
	return VideoSpec{Encoder: "libx265", Extra: extra}
}

// VP9 builds a video spec using libvpx-vp9 in single-pass constant quality
// mode. CRF defaults to 31 when zero.
// See https://trac.ffmpeg.org/wiki/Encode/VP9#constantq.
func VP9(crf int) VideoSpec {
	if crf <= 0 {
		crf = 31
	}
	return VideoSpec{
		Encoder: "libvpx-vp9",
		Extra:   []string{"-crf", strconv.Itoa(crf), "-b:v", "0", "-quality", "good"},
	}
}

// AV1 builds a video spec using the libaom-av1 reference encoder in constant
// quality mode. CRF defaults to 30 when zero. The reference encoder is very
// slow. See https://trac.ffmpeg.org/wiki/Encode/AV1#ConstantQuality.
func AV1(crf int) VideoSpec {
	if crf <= 0 {
		crf = 30
	}
	return VideoSpec{
		Encoder: "libaom-av1",
		Extra:   []string{"-crf", strconv.Itoa(crf), "-b:v", "0", "-strict", "experimental"},
	}
}

// AAC builds an audio spec using the native aac encoder.
func AAC(channels int, bitRate string) AudioSpec {
	return AudioSpec{Encoder: "aac", Channels: channels, BitRate: bitRate}
}

// Opus builds an audio spec using the libopus encoder.
func Opus(channels int, bitRate string) AudioSpec {
	return AudioSpec{Encoder: "libopus", Channels: channels, BitRate: bitRate}
}

// MP4 builds an mp4 format spec. With faststart the moov atom is moved to
// the front of the file so playback can begin before the download completes.
func MP4(faststart bool) FormatSpec {
	spec := FormatSpec{Name: "mp4"}
	if faststart {
		spec.Extra = []string{"-movflags", "faststart"}
	}
	return spec
}

// WebM builds a webm format spec.
func WebM() FormatSpec {
	return FormatSpec{Name: "webm"}
}

// Matroska builds an mkv format spec.
func Matroska() FormatSpec {
	return FormatSpec{Name: "matroska"}
}

// Ogg builds an ogg format spec.
func Ogg() FormatSpec {
	return FormatSpec{Name: "ogg"}
}

// Image2 builds the still-image muxer spec used for thumbnail output.
func Image2() FormatSpec {
	return FormatSpec{Name: "image2"}
}
