// Package extract produces an audio file from a media input via ffmpeg.
//
// Extraction is a two-step decision procedure: first a stream-copy fast path
// that moves the existing audio stream into the target container without
// re-encoding, then a full transcode fallback when the copy is incompatible
// with the requested codec/container combination. The fallback runs at most
// once; its failure is terminal.
package extract

import (
	"context"
	"fmt"

	"github.com/alnah/go-audiopipe/internal/ffmpeg"
)

// Extractor invokes ffmpeg to extract or transcode audio.
type Extractor struct {
	ffmpegPath string
	exec       commandRunner
	files      fileStatter
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithRunner sets the command runner (for testing).
func WithRunner(r commandRunner) ExtractorOption {
	return func(e *Extractor) { e.exec = r }
}

// WithFileStatter sets the file statter (for testing).
func WithFileStatter(fs fileStatter) ExtractorOption {
	return func(e *Extractor) { e.files = fs }
}

// NewExtractor creates an Extractor for the given ffmpeg binary.
func NewExtractor(ffmpegPath string, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: ffmpegPath,
		exec:       ffmpeg.NewExecutor(),
		files:      osFileStatter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CopyExtract attempts the fast path: copy the existing audio stream verbatim
// into the container implied by outputPath's extension, dropping video.
// A returned error means "fast path unavailable", not a hard failure; callers
// are expected to inspect it and fall back to Transcode.
func (e *Extractor) CopyExtract(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-i", inputPath,
		"-vn", // Drop video stream.
		"-acodec", "copy",
		"-y",
		outputPath,
	}

	if err := e.exec.Run(ctx, e.ffmpegPath, args); err != nil {
		return fmt.Errorf("stream copy: %w", err)
	}

	// ffmpeg can exit 0 yet write nothing useful when the copied codec does
	// not fit the target container. Treat a missing or empty output the same
	// as a non-zero exit: fast path unavailable.
	info, err := e.files.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("stream copy: output not written: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("stream copy: output is empty")
	}

	return nil
}

// Transcode re-encodes the input's audio into the requested format and
// bitrate. Failure returns ErrEncodingFailed wrapping the tool diagnostics;
// this is terminal, there is no further fallback.
func (e *Extractor) Transcode(ctx context.Context, inputPath, outputPath string, format Format, bitrate string) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-acodec", format.Codec(),
		"-ab", bitrate,
		"-y",
		outputPath,
	}

	if err := e.exec.Run(ctx, e.ffmpegPath, args); err != nil {
		// Both sentinels stay in the chain so callers can distinguish a
		// timeout from a codec failure.
		return fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	return nil
}

// Extract runs the full decision procedure: fast path first, re-encode on
// fast-path failure. The fast-path error value is inspected explicitly so the
// decision point stays visible and testable.
func (e *Extractor) Extract(ctx context.Context, inputPath, outputPath string, format Format, bitrate string) error {
	copyErr := e.CopyExtract(ctx, inputPath, outputPath)
	if copyErr == nil {
		return nil
	}

	if err := e.Transcode(ctx, inputPath, outputPath, format, bitrate); err != nil {
		return fmt.Errorf("%v; %w", copyErr, err)
	}
	return nil
}
