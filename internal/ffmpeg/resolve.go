package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Environment variables for custom binary paths.
const (
	envFFmpegPath  = "FFMPEG_PATH"
	envFFprobePath = "FFPROBE_PATH"
)

// minFFmpegMajorVersion is the minimum supported ffmpeg version.
// Versions below this may lack required codec/container support.
const minFFmpegMajorVersion = 4

// ---------------------------------------------------------------------------
// Resolver - testable binary resolution with dependency injection
// ---------------------------------------------------------------------------

// Resolver finds the ffmpeg and ffprobe binaries.
type Resolver struct {
	env envProvider
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithEnvProvider sets the environment provider (for testing).
func WithEnvProvider(env envProvider) ResolverOption {
	return func(r *Resolver) { r.env = env }
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		env: osEnvProvider{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds ffmpeg using the following precedence:
//  1. FFMPEG_PATH environment variable (error if set but invalid)
//  2. System PATH
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	return r.resolve(envFFmpegPath, "ffmpeg")
}

// ResolveProbe finds ffprobe using the following precedence:
//  1. FFPROBE_PATH environment variable (error if set but invalid)
//  2. System PATH
func (r *Resolver) ResolveProbe(ctx context.Context) (string, error) {
	return r.resolve(envFFprobePath, "ffprobe")
}

func (r *Resolver) resolve(envKey, binary string) (string, error) {
	// 1. Check environment variable override.
	if envPath := r.env.Getenv(envKey); envPath != "" {
		if _, err := r.env.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: %s is set to %q but binary not found",
				ErrNotFound, envKey, envPath)
		}
		return envPath, nil
	}

	// 2. Check system PATH.
	if path, err := r.env.LookPath(binary); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: %s is not on PATH\n\n%s",
		ErrNotFound, binary, installInstructions)
}

// installInstructions is shown when no binary can be found.
const installInstructions = `Install ffmpeg (includes ffprobe):
  macOS:         brew install ffmpeg
  Debian/Ubuntu: apt install ffmpeg
  Windows:       winget install ffmpeg
Or set FFMPEG_PATH / FFPROBE_PATH to an existing binary.`

// ---------------------------------------------------------------------------
// VersionChecker - warns on outdated ffmpeg installations
// ---------------------------------------------------------------------------

// VersionChecker verifies ffmpeg version requirements.
type VersionChecker struct {
	executor *Executor
	stderr   io.Writer
}

// VersionCheckerOption configures a VersionChecker.
type VersionCheckerOption func(*VersionChecker)

// WithVersionExecutor sets the executor for running ffmpeg.
func WithVersionExecutor(e *Executor) VersionCheckerOption {
	return func(vc *VersionChecker) { vc.executor = e }
}

// WithVersionStderr sets the warning output writer.
func WithVersionStderr(w io.Writer) VersionCheckerOption {
	return func(vc *VersionChecker) { vc.stderr = w }
}

// NewVersionChecker creates a VersionChecker with the given options.
func NewVersionChecker(opts ...VersionCheckerOption) *VersionChecker {
	vc := &VersionChecker{
		executor: getDefaultExecutor(),
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(vc)
	}
	return vc
}

// Check runs `ffmpeg -version` and warns if the major version is below the
// minimum. Returns false when the version could not be determined.
// Version problems never fail the pipeline; conversion is attempted anyway.
func (vc *VersionChecker) Check(ctx context.Context, ffmpegPath string) bool {
	output, err := vc.executor.RunOutput(ctx, ffmpegPath, []string{"-version"})
	if err != nil || output == "" {
		return false // Can't check version, proceed anyway
	}

	// Parse version from output like "ffmpeg version 6.1.1 Copyright..."
	lines := strings.Split(output, "\n")
	if len(lines) == 0 || lines[0] == "" {
		return false
	}

	var major int
	if _, err := fmt.Sscanf(lines[0], "ffmpeg version %d", &major); err != nil {
		// Try alternative format "ffmpeg version n6.1.1..."
		if _, err := fmt.Sscanf(lines[0], "ffmpeg version n%d", &major); err != nil {
			return false // Can't parse version
		}
	}

	if major < minFFmpegMajorVersion {
		fmt.Fprintf(vc.stderr, "Warning: ffmpeg version %d detected, version %d+ recommended\n",
			major, minFFmpegMajorVersion)
	}
	return true
}

// ---------------------------------------------------------------------------
// Package-level functions - default resolver facade
// ---------------------------------------------------------------------------

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

func getDefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// Resolve finds ffmpeg using the default resolver.
func Resolve(ctx context.Context) (string, error) {
	return getDefaultResolver().Resolve(ctx)
}

// ResolveProbe finds ffprobe using the default resolver.
func ResolveProbe(ctx context.Context) (string, error) {
	return getDefaultResolver().ResolveProbe(ctx)
}

// CheckVersion warns about outdated ffmpeg using the default checker.
func CheckVersion(ctx context.Context, ffmpegPath string) {
	NewVersionChecker().Check(ctx, ffmpegPath)
}
