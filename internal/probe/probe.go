// Package probe inspects media files with ffprobe without decoding content.
// It is the read-only validation step of the conversion pipeline: callers use
// it to confirm an input exists and carries at least one audio stream before
// any extraction work starts.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alnah/go-audiopipe/internal/ffmpeg"
)

// Stream represents a media stream (audio, video, subtitle, etc.)
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// Format represents the container format information.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

// Result holds the metadata extracted from a media file.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// HasAudio reports whether the file contains at least one audio stream.
func (r Result) HasAudio() bool {
	for _, s := range r.Streams {
		if s.CodecType == "audio" {
			return true
		}
	}
	return false
}

// AudioCodec returns the codec name of the first audio stream,
// or empty string if there is none.
func (r Result) AudioCodec() string {
	for _, s := range r.Streams {
		if s.CodecType == "audio" {
			return s.CodecName
		}
	}
	return ""
}

// Duration returns the container duration in seconds.
// Returns an error if the duration is missing or cannot be parsed.
func (r Result) Duration() (float64, error) {
	if r.Format.Duration == "" {
		return 0, fmt.Errorf("duration not available in format metadata")
	}

	d, err := strconv.ParseFloat(r.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", r.Format.Duration, err)
	}
	return d, nil
}

// commandOutputter runs a tool and captures its stdout.
type commandOutputter interface {
	RunOutput(ctx context.Context, path string, args []string) (string, error)
}

// Prober probes media files via ffprobe.
type Prober struct {
	ffprobePath string
	exec        commandOutputter
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithExecutor sets the command executor (for testing).
func WithExecutor(e commandOutputter) ProberOption {
	return func(p *Prober) { p.exec = e }
}

// NewProber creates a Prober for the given ffprobe binary.
func NewProber(ffprobePath string, opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: ffprobePath,
		exec:        ffmpeg.NewExecutor(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe inspects inputPath and returns its stream and format metadata.
// Returns ErrInvalidInput (wrapping ffprobe's diagnostics) when the file
// cannot be opened or is not a media file. The probe never modifies the input.
func (p *Prober) Probe(ctx context.Context, inputPath string) (Result, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}

	out, err := p.exec.RunOutput(ctx, p.ffprobePath, args)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, inputPath, err)
	}

	var result Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %s: unexpected ffprobe output: %v", ErrInvalidInput, inputPath, err)
	}

	return result, nil
}
