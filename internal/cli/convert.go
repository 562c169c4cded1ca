package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-audiopipe/internal/config"
	"github.com/alnah/go-audiopipe/internal/extract"
	"github.com/alnah/go-audiopipe/internal/pipeline"
	"github.com/alnah/go-audiopipe/internal/storage"
)

// Built-in defaults, used when neither flags, profile, nor config set a value.
const (
	defaultFormat  = "mp3"
	defaultBitrate = "192k"
)

// Parallelism configuration.
const (
	// defaultParallel is the default number of concurrent conversions.
	// Conversions are CPU-bound in ffmpeg; two keeps a laptop responsive.
	defaultParallel = 2

	// maxParallel caps concurrent conversions.
	maxParallel = 8
)

// defaultToolTimeout bounds each ffmpeg/ffprobe invocation.
// Zero (via --timeout 0) disables the bound.
const defaultToolTimeout = 10 * time.Minute

// bitratePattern matches tokens like "192k", "320k", or a plain bits/s value.
var bitratePattern = regexp.MustCompile(`^[0-9]+k?$`)

// clampParallel constrains the concurrent conversion count to [1, maxParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxParallel {
		return maxParallel
	}
	return n
}

// deriveOutputName converts an input path to an output file name.
// Example: "media/clip.mp4" -> "clip.mp3"
func deriveOutputName(inputPath string, format extract.Format) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + format.Ext()
}

// ConvertCmd creates the convert command.
// The env parameter provides injectable dependencies for testing.
func ConvertCmd(env *Env) *cobra.Command {
	var (
		formatFlag  string
		bitrateFlag string
		output      string
		profileName string
		remote      bool
		parallel    int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "convert <media-file>...",
		Short: "Extract or transcode audio from media files",
		Long: `Extract audio from video or audio files into a target format.

The existing audio stream is copied verbatim when it fits the target
container (fast path); otherwise it is re-encoded at the requested bitrate.

When R2 storage is configured (R2_ACCOUNT_ID, R2_ACCESS_KEY_ID,
R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME), results are uploaded and a URL is
printed. Otherwise the output file is written locally.`,
		Example: `  audiopipe convert clip.mp4
  audiopipe convert clip.mp4 -f wav -o voice.wav
  audiopipe convert lecture.webm -f ogg -b 128k
  audiopipe convert a.mp4 b.mp4 c.mp4 --parallel 3
  audiopipe convert clip.mp4 --profile podcast
  audiopipe convert clip.mp4 --remote  # fail if storage is unconfigured`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := convertOptions{
				format:        formatFlag,
				formatSet:     cmd.Flags().Changed("format"),
				bitrate:       bitrateFlag,
				bitrateSet:    cmd.Flags().Changed("bitrate"),
				output:        output,
				profile:       profileName,
				requireRemote: remote,
				parallel:      parallel,
				timeout:       timeout,
			}
			return runConvert(cmd.Context(), env, args, opts)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", defaultFormat, "Target audio format: mp3, aac, wav, ogg")
	cmd.Flags().StringVarP(&bitrateFlag, "bitrate", "b", defaultBitrate, "Audio bitrate for re-encoding (e.g. 192k, 320k)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (single input only)")
	cmd.Flags().StringVar(&profileName, "profile", "", "Named format/bitrate preset from profiles.yaml")
	cmd.Flags().BoolVar(&remote, "remote", false, "Require upload to remote storage")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", defaultParallel, "Max concurrent conversions (1-8)")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultToolTimeout, "Per-invocation ffmpeg timeout (0 disables)")

	return cmd
}

// convertOptions carries resolved flag state into runConvert.
type convertOptions struct {
	format        string
	formatSet     bool
	bitrate       string
	bitrateSet    bool
	output        string
	profile       string
	requireRemote bool
	parallel      int
	timeout       time.Duration
}

// runConvert executes the conversion pipeline for each input.
// Validation order: files exist -> output arity -> profile -> format ->
// bitrate -> storage config -> tool resolution.
func runConvert(ctx context.Context, env *Env, inputs []string, opts convertOptions) error {
	// === VALIDATION (fail-fast) ===

	// 1. Every input exists.
	for _, input := range inputs {
		if _, err := os.Stat(input); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrFileNotFound, input)
			}
			return fmt.Errorf("cannot access input file: %w", err)
		}
	}

	// 2. Explicit output only makes sense for a single input.
	if opts.output != "" && len(inputs) > 1 {
		return ErrOutputWithMultipleInputs
	}

	// 3. Load config for defaults and output-dir.
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// 4. Resolve format/bitrate: explicit flag > profile > config > default.
	formatToken := opts.format
	bitrate := opts.bitrate
	if opts.profile != "" {
		profiles, err := env.ProfileLoader.LoadProfiles()
		if err != nil {
			return err
		}
		p, ok := profiles[opts.profile]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, opts.profile)
		}
		if !opts.formatSet && p.Format != "" {
			formatToken = p.Format
		}
		if !opts.bitrateSet && p.Bitrate != "" {
			bitrate = p.Bitrate
		}
	} else {
		if !opts.formatSet && cfg.Format != "" {
			formatToken = cfg.Format
		}
		if !opts.bitrateSet && cfg.Bitrate != "" {
			bitrate = cfg.Bitrate
		}
	}

	format, err := extract.ParseFormat(formatToken)
	if err != nil {
		return err
	}
	if !bitratePattern.MatchString(bitrate) {
		return fmt.Errorf("%w: %q (expected e.g. 192k)", ErrInvalidBitrate, bitrate)
	}

	// 5. Storage config: incomplete credentials are an error only with --remote.
	storageCfg := storage.ConfigFromEnv(env.Getenv)
	if opts.requireRemote {
		if err := storageCfg.Validate(); err != nil {
			return err
		}
	}

	// 6. Resolve tools.
	ffmpegPath, err := env.ToolResolver.Resolve(ctx)
	if err != nil {
		return err
	}
	ffprobePath, err := env.ToolResolver.ResolveProbe(ctx)
	if err != nil {
		return err
	}
	env.ToolResolver.CheckVersion(ctx, ffmpegPath)

	// === CONVERSION ===

	runner := env.PipelineFactory.NewPipeline(ffmpegPath, ffprobePath, opts.timeout, storageCfg)

	results := make([]pipeline.Result, len(inputs))
	started := env.Now()

	// Fan out independent, fully isolated conversions.
	sem := make(chan struct{}, clampParallel(opts.parallel))
	g, gctx := errgroup.WithContext(ctx)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			req := pipeline.Request{
				InputPath:     input,
				Format:        format,
				Bitrate:       bitrate,
				RequireRemote: opts.requireRemote,
			}
			if !storageCfg.Complete() {
				defaultName := deriveOutputName(input, format)
				req.OutputPath = config.ResolveOutputPath(opts.output, cfg.OutputDir, defaultName)
			}

			result, err := runner.Run(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	printResults(env, inputs, results, env.Now().Sub(started))
	return nil
}
