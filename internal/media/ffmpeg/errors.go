package ffmpeg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound reports that the external binary could not be resolved.
	ErrToolNotFound = errors.New("tool not found")
	// ErrExternalTool tags every non-zero exit reported by the external tool.
	ErrExternalTool = errors.New("external tool error")
	// ErrTimeout reports that an invocation exceeded the configured limit.
	ErrTimeout = errors.New("invocation timed out")
)

// ToolError carries the full context of a failed invocation: the command
// line, the exit code, and whatever the tool wrote to stderr. It matches
// ErrExternalTool under errors.Is.
type ToolError struct {
	Binary   string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "(no stderr output)"
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Binary, e.ExitCode, msg)
}

func (e *ToolError) Unwrap() error {
	return ErrExternalTool
}

// CommandLine reconstructs the invocation for diagnostics.
func (e *ToolError) CommandLine() string {
	if len(e.Args) == 0 {
		return e.Binary
	}
	return e.Binary + " " + strings.Join(e.Args, " ")
}
