// Package ffmpeg invokes the ffmpeg and ffprobe command-line tools.
//
// Runner owns binary resolution, the standard flag prefixes, timeout
// enforcement, and error classification. Command/Input/Output build
// deterministic argument vectors; codec and format constructors cover the
// combinations the shortcuts use. Process execution sits behind the Executor
// interface so tests can substitute a fake without touching PATH.
package ffmpeg
