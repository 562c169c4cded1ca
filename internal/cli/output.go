package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-audiopipe/internal/format"
	"github.com/alnah/go-audiopipe/internal/pipeline"
)

// printResults writes one line per finished conversion to stdout, in input
// order, plus a summary to stderr. Result locations go to stdout so they can
// be piped; everything else goes to stderr.
func printResults(env *Env, inputs []string, results []pipeline.Result, elapsed time.Duration) {
	for i, result := range results {
		fmt.Fprintln(env.Stdout, result.Location)

		if result.Remote {
			fmt.Fprintf(env.Stderr, "%s: uploaded\n", inputs[i])
			continue
		}
		if size := localFileSize(result.Location); size > 0 {
			fmt.Fprintf(env.Stderr, "%s: wrote %s\n", inputs[i], format.Size(size))
		}
	}

	fmt.Fprintf(env.Stderr, "Done in %s\n", format.Duration(elapsed))
}

// localFileSize returns the file size, or 0 when it cannot be read.
func localFileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
