package extract

import (
	"context"
	"os"

	"github.com/alnah/go-audiopipe/internal/ffmpeg"
)

// commandRunner executes an external tool, returning an error that wraps the
// tool's captured stderr on non-zero exit.
type commandRunner interface {
	Run(ctx context.Context, path string, args []string) error
}

// fileStatter retrieves file information.
type fileStatter interface {
	Stat(name string) (os.FileInfo, error)
}

// --- Default implementations using real OS functions ---

// Compile-time interface verification.
var (
	_ commandRunner = (*ffmpeg.Executor)(nil)
	_ fileStatter   = osFileStatter{}
)

// osFileStatter implements fileStatter using os.Stat.
type osFileStatter struct{}

func (osFileStatter) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
