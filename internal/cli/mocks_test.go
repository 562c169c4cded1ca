package cli

import (
	"context"
	"sync"
	"time"

	"github.com/alnah/go-audiopipe/internal/config"
	"github.com/alnah/go-audiopipe/internal/pipeline"
	"github.com/alnah/go-audiopipe/internal/storage"
)

// ---------------------------------------------------------------------------
// Mock ToolResolver
// ---------------------------------------------------------------------------

type mockToolResolver struct {
	ResolveFunc      func(ctx context.Context) (string, error)
	ResolveProbeFunc func(ctx context.Context) (string, error)

	mu           sync.Mutex
	resolveCalls int
}

func (m *mockToolResolver) Resolve(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx)
	}
	return "/usr/bin/ffmpeg", nil
}

func (m *mockToolResolver) ResolveProbe(ctx context.Context) (string, error) {
	if m.ResolveProbeFunc != nil {
		return m.ResolveProbeFunc(ctx)
	}
	return "/usr/bin/ffprobe", nil
}

func (m *mockToolResolver) CheckVersion(ctx context.Context, ffmpegPath string) {}

func (m *mockToolResolver) ResolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

// ---------------------------------------------------------------------------
// Mock ProfileLoader
// ---------------------------------------------------------------------------

type mockProfileLoader struct {
	profiles map[string]config.Profile
	err      error
}

func (m *mockProfileLoader) LoadProfiles() (map[string]config.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profiles != nil {
		return m.profiles, nil
	}
	return map[string]config.Profile{}, nil
}

// ---------------------------------------------------------------------------
// Mock PipelineFactory + Runner
// ---------------------------------------------------------------------------

type mockRunner struct {
	RunFunc func(ctx context.Context, req pipeline.Request) (pipeline.Result, error)

	mu       sync.Mutex
	requests []pipeline.Request
}

func (m *mockRunner) Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, req)
	}
	return pipeline.Result{Location: req.OutputPath, Remote: false}, nil
}

func (m *mockRunner) Requests() []pipeline.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pipeline.Request(nil), m.requests...)
}

type mockPipelineFactory struct {
	runner *mockRunner

	mu          sync.Mutex
	timeouts    []time.Duration
	storageCfgs []storage.Config
}

func (m *mockPipelineFactory) NewPipeline(ffmpegPath, ffprobePath string, timeout time.Duration, storageCfg storage.Config) Runner {
	m.mu.Lock()
	m.timeouts = append(m.timeouts, timeout)
	m.storageCfgs = append(m.storageCfgs, storageCfg)
	m.mu.Unlock()

	if m.runner == nil {
		m.runner = &mockRunner{}
	}
	return m.runner
}

// ---------------------------------------------------------------------------
// Test Env construction
// ---------------------------------------------------------------------------

// newTestEnv returns an Env wired with mocks and the given overrides.
func newTestEnv(opts ...EnvOption) *Env {
	base := []EnvOption{
		WithGetenv(func(string) string { return "" }),
		WithNow(func() time.Time { return time.Unix(1700000000, 0) }),
		WithToolResolver(&mockToolResolver{}),
		WithConfigLoader(&mockConfigLoader{}),
		WithProfileLoader(&mockProfileLoader{}),
	}
	return NewEnv(append(base, opts...)...)
}
