package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"avtool/internal/logging"
)

// Flags every invocation carries. The ffmpeg prefix additionally forces
// overwrite of existing outputs; the ffprobe prefix requests JSON output.
var (
	baseFlags    = []string{"-hide_banner", "-v", "error"}
	ffmpegFlags  = append(append([]string(nil), baseFlags...), "-y")
	ffprobeFlags = append(append([]string(nil), baseFlags...), "-of", "json")
)

// Executor abstracts process execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithTimeout caps every invocation at the given duration. Zero disables
// the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithLogger attaches a logger for per-invocation debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner invokes the ffmpeg and ffprobe binaries. Every call is a single
// synchronous process invocation with both standard streams fully captured;
// the runner holds no state between calls.
type Runner struct {
	ffmpegBinary  string
	ffprobeBinary string
	timeout       time.Duration
	exec          Executor
	logger        *slog.Logger
}

// New constructs a runner for the given binaries. Empty values fall back to
// PATH resolution of the conventional names.
func New(ffmpegBinary, ffprobeBinary string, opts ...Option) *Runner {
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	runner := &Runner{
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		exec:          commandExecutor{},
		logger:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// FFmpeg runs the ffmpeg binary with the standard flag prefix followed by
// args and returns captured stdout.
func (r *Runner) FFmpeg(ctx context.Context, args ...string) ([]byte, error) {
	return r.run(ctx, r.ffmpegBinary, ffmpegFlags, args)
}

// FFprobe runs the ffprobe binary with the standard flag prefix (JSON output
// mode) followed by args and returns captured stdout.
func (r *Runner) FFprobe(ctx context.Context, args ...string) ([]byte, error) {
	return r.run(ctx, r.ffprobeBinary, ffprobeFlags, args)
}

func (r *Runner) run(ctx context.Context, binary string, prefix, args []string) ([]byte, error) {
	full := make([]string, 0, len(prefix)+len(args))
	full = append(full, prefix...)
	full = append(full, args...)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	invocation := uuid.NewString()
	started := time.Now()
	r.logger.Debug("invoking external tool",
		logging.String("invocation", invocation),
		logging.String("binary", binary),
		logging.Int("args", len(full)),
	)

	stdout, stderr, err := r.exec.Run(ctx, binary, full)
	elapsed := time.Since(started)

	if err != nil {
		classified := classify(ctx, binary, full, stderr, err)
		r.logger.Debug("external tool failed",
			logging.String("invocation", invocation),
			logging.String("binary", binary),
			logging.Duration("elapsed", elapsed),
			logging.Error(classified),
		)
		return nil, classified
	}

	r.logger.Debug("external tool finished",
		logging.String("invocation", invocation),
		logging.String("binary", binary),
		logging.Duration("elapsed", elapsed),
		logging.Int("stdout_bytes", len(stdout)),
	)
	return stdout, nil
}

func classify(ctx context.Context, binary string, args []string, stderr []byte, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, binary)
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrToolNotFound, binary)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{
			Binary:   binary,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   string(stderr),
		}
	}
	return err
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	// Resolve explicitly so a missing binary surfaces as a lookup error
	// instead of a fork/exec failure.
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, nil, err
	}

	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec
	cmd.Env = append(os.Environ(), "AV_LOG_FORCE_NOCOLOR=1")
	// Do not wait on inherited pipe ends once the context has expired.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
