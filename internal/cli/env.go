package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-audiopipe/internal/config"
	"github.com/alnah/go-audiopipe/internal/extract"
	"github.com/alnah/go-audiopipe/internal/ffmpeg"
	"github.com/alnah/go-audiopipe/internal/pipeline"
	"github.com/alnah/go-audiopipe/internal/probe"
	"github.com/alnah/go-audiopipe/internal/storage"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ToolResolver    ToolResolver
	ConfigLoader    ConfigLoader
	ProfileLoader   ProfileLoader
	PipelineFactory PipelineFactory
}

// ToolResolver resolves the paths to the ffmpeg and ffprobe binaries.
type ToolResolver interface {
	Resolve(ctx context.Context) (string, error)
	ResolveProbe(ctx context.Context) (string, error)
	CheckVersion(ctx context.Context, ffmpegPath string)
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// ProfileLoader loads named conversion presets.
type ProfileLoader interface {
	LoadProfiles() (map[string]config.Profile, error)
}

// Runner executes one conversion request.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// PipelineFactory assembles a conversion pipeline from resolved tool paths,
// a per-invocation timeout, and (possibly incomplete) storage credentials.
type PipelineFactory interface {
	NewPipeline(ffmpegPath, ffprobePath string, timeout time.Duration, storageCfg storage.Config) Runner
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithToolResolver sets the tool resolver.
func WithToolResolver(r ToolResolver) EnvOption {
	return func(e *Env) {
		e.ToolResolver = r
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithProfileLoader sets the profile loader.
func WithProfileLoader(l ProfileLoader) EnvOption {
	return func(e *Env) {
		e.ProfileLoader = l
	}
}

// WithPipelineFactory sets the pipeline factory.
func WithPipelineFactory(f PipelineFactory) EnvOption {
	return func(e *Env) {
		e.PipelineFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		Now:             time.Now,
		ToolResolver:    &defaultToolResolver{},
		ConfigLoader:    &defaultConfigLoader{},
		ProfileLoader:   &defaultProfileLoader{},
		PipelineFactory: &defaultPipelineFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultToolResolver implements ToolResolver using the ffmpeg package.
type defaultToolResolver struct{}

func (defaultToolResolver) Resolve(ctx context.Context) (string, error) {
	return ffmpeg.Resolve(ctx)
}

func (defaultToolResolver) ResolveProbe(ctx context.Context) (string, error) {
	return ffmpeg.ResolveProbe(ctx)
}

func (defaultToolResolver) CheckVersion(ctx context.Context, ffmpegPath string) {
	ffmpeg.CheckVersion(ctx, ffmpegPath)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultProfileLoader implements ProfileLoader using the config package.
type defaultProfileLoader struct{}

func (defaultProfileLoader) LoadProfiles() (map[string]config.Profile, error) {
	return config.LoadProfiles()
}

// defaultPipelineFactory wires the production prober, extractor, and uploader.
type defaultPipelineFactory struct{}

func (defaultPipelineFactory) NewPipeline(ffmpegPath, ffprobePath string, timeout time.Duration, storageCfg storage.Config) Runner {
	executor := ffmpeg.NewExecutor(ffmpeg.WithTimeout(timeout))

	prober := probe.NewProber(ffprobePath, probe.WithExecutor(executor))
	extractor := extract.NewExtractor(ffmpegPath, extract.WithRunner(executor))

	var opts []pipeline.Option
	if storageCfg.Complete() {
		opts = append(opts, pipeline.WithUploader(storage.NewR2Uploader(storageCfg)))
	}

	return pipeline.New(prober, extractor, opts...)
}

// Compile-time interface verification.
var (
	_ ToolResolver    = (*defaultToolResolver)(nil)
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ ProfileLoader   = (*defaultProfileLoader)(nil)
	_ PipelineFactory = (*defaultPipelineFactory)(nil)
)
