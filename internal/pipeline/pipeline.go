// Package pipeline orchestrates one audio conversion request end to end:
// validate the input, extract audio (fast stream copy, then re-encode
// fallback), and publish the result either to remote storage or to a local
// output path. Control flow is strictly linear per request; there is no
// queuing, no retries beyond the single fallback, and no state shared
// between requests.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-audiopipe/internal/extract"
	"github.com/alnah/go-audiopipe/internal/probe"
	"github.com/alnah/go-audiopipe/internal/storage"
)

// Prober validates input files without modifying them.
type Prober interface {
	Probe(ctx context.Context, inputPath string) (probe.Result, error)
}

// Extractor produces the output audio file.
type Extractor interface {
	Extract(ctx context.Context, inputPath, outputPath string, format extract.Format, bitrate string) error
}

// Uploader publishes a local file and returns its remote URL.
type Uploader interface {
	Upload(ctx context.Context, localPath, key, contentType string) (string, error)
}

// Request describes one conversion. Immutable once created; it exists for
// the duration of a single Run call.
type Request struct {
	InputPath string
	Format    extract.Format
	Bitrate   string

	// OutputPath is the local destination used when no uploader is
	// configured. Empty means "input basename with the target extension".
	OutputPath string

	// RequireRemote makes missing storage configuration an error instead of
	// a local-path result.
	RequireRemote bool
}

// Result is the terminal output of a conversion: either a remote URL or a
// local path, never both.
type Result struct {
	Location string
	Remote   bool
}

// Pipeline runs conversion requests. The zero value is not usable; construct
// with New.
type Pipeline struct {
	prober    Prober
	extractor Extractor
	uploader  Uploader // nil when remote storage is unconfigured

	tempDir tempDirCreator
	files   fileMover
	keyGen  func(ext string) string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithUploader sets the result publisher. Leaving it unset means results
// stay local.
func WithUploader(u Uploader) Option {
	return func(p *Pipeline) { p.uploader = u }
}

// WithTempDirCreator sets the temp directory creator (for testing).
func WithTempDirCreator(t tempDirCreator) Option {
	return func(p *Pipeline) { p.tempDir = t }
}

// WithFileMover sets the file mover (for testing).
func WithFileMover(f fileMover) Option {
	return func(p *Pipeline) { p.files = f }
}

// WithKeyGenerator sets the object key generator (for testing).
func WithKeyGenerator(fn func(ext string) string) Option {
	return func(p *Pipeline) { p.keyGen = fn }
}

// New creates a Pipeline around a prober and an extractor.
func New(prober Prober, extractor Extractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		prober:    prober,
		extractor: extractor,
		tempDir:   osTempDirCreator{},
		files:     osFileMover{},
		keyGen:    storage.ObjectKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one request: Validate -> FastExtract -> [Fallback] -> Publish.
// The request owns a private temp directory which is removed on every exit
// path. Errors are surfaced directly; no partial results are returned.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if req.RequireRemote && p.uploader == nil {
		return Result{}, storage.ErrNotConfigured
	}

	// Validate: read-only probe, fails before any extraction work.
	info, err := p.prober.Probe(ctx, req.InputPath)
	if err != nil {
		return Result{}, err
	}
	if !info.HasAudio() {
		return Result{}, fmt.Errorf("%w: %s", probe.ErrNoAudioStream, req.InputPath)
	}

	// The request exclusively owns its temp dir; guaranteed cleanup on
	// success, fallback, and failure paths alike.
	tmpDir, err := p.tempDir.MkdirTemp("", "audiopipe-*")
	if err != nil {
		return Result{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = p.files.RemoveAll(tmpDir) }()

	tmpOut := filepath.Join(tmpDir, "audio"+req.Format.Ext())
	if err := p.extractor.Extract(ctx, req.InputPath, tmpOut, req.Format, req.Bitrate); err != nil {
		return Result{}, err
	}

	// Publish: remote URL when storage is configured, local path otherwise.
	if p.uploader != nil {
		key := p.keyGen(req.Format.Ext())
		url, err := p.uploader.Upload(ctx, tmpOut, key, req.Format.ContentType())
		if err != nil {
			return Result{}, err
		}
		return Result{Location: url, Remote: true}, nil
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = defaultOutputPath(req.InputPath, req.Format)
	}
	if err := p.files.Move(tmpOut, outPath); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	return Result{Location: outPath, Remote: false}, nil
}

// defaultOutputPath converts an input path to an output file name in the
// current directory. Example: "media/clip.mp4" -> "clip.mp3".
func defaultOutputPath(inputPath string, format extract.Format) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + format.Ext()
}
