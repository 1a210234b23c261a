package deps

// Check reports the availability of the ffmpeg and ffprobe binaries that a
// toolkit configured with the given commands would execute. The commands may
// be bare names (resolved through PATH) or explicit paths.
func Check(ffmpegCommand, ffprobeCommand string) []Status {
	return CheckBinaries([]Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegCommand,
			Description: "Conversion and thumbnail extraction",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeCommand,
			Description: "Media inspection",
		},
	})
}
