package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ---------------------------------------------------------------------------
// Executor - testable tool execution with dependency injection
// ---------------------------------------------------------------------------

// runFn is the function type for running a command and capturing its output.
// stdout carries structured output (ffprobe JSON), stderr carries diagnostics
// (ffmpeg writes nearly everything there).
type runFn func(ctx context.Context, path string, args []string) (stdout, stderr string, err error)

// Executor runs ffmpeg/ffprobe commands with injectable dependencies.
type Executor struct {
	run     runFn
	timeout time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRun sets a custom run function (for testing).
func WithRun(fn runFn) ExecutorOption {
	return func(e *Executor) { e.run = fn }
}

// WithTimeout bounds each invocation. Zero means no timeout.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = d }
}

// NewExecutor creates an Executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		run: defaultRun,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the tool and discards stdout. On non-zero exit the returned
// error wraps the captured stderr, which is the tool's only failure channel.
func (e *Executor) Run(ctx context.Context, path string, args []string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	_, stderr, err := e.run(ctx, path, args)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s after %v", ErrTimeout, path, e.timeout)
		}
		return fmt.Errorf("%s: %w: %s", path, err, strings.TrimSpace(stderr))
	}
	return nil
}

// RunOutput executes the tool and returns its stdout (e.g. ffprobe JSON).
// On failure the error wraps the captured stderr.
func (e *Executor) RunOutput(ctx context.Context, path string, args []string) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	stdout, stderr, err := e.run(ctx, path, args)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %v", ErrTimeout, path, e.timeout)
		}
		return "", fmt.Errorf("%s: %w: %s", path, err, strings.TrimSpace(stderr))
	}
	return stdout, nil
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

// defaultRun is the production implementation.
func defaultRun(ctx context.Context, path string, args []string) (string, string, error) {
	// #nosec G204 -- path comes from internal resolution, args are built by callers
	cmd := exec.CommandContext(ctx, path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ---------------------------------------------------------------------------
// Package-level functions - default executor facade
// ---------------------------------------------------------------------------

var (
	defaultExecutor     *Executor
	defaultExecutorOnce sync.Once
)

// getDefaultExecutor returns the lazily-initialized default executor.
func getDefaultExecutor() *Executor {
	defaultExecutorOnce.Do(func() {
		defaultExecutor = NewExecutor()
	})
	return defaultExecutor
}

// Run executes a tool using the default executor.
func Run(ctx context.Context, path string, args []string) error {
	return getDefaultExecutor().Run(ctx, path, args)
}

// RunOutput executes a tool and captures stdout using the default executor.
func RunOutput(ctx context.Context, path string, args []string) (string, error) {
	return getDefaultExecutor().RunOutput(ctx, path, args)
}
