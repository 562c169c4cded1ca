package storage

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ---------------------------------------------------------------------------
// Interfaces - local to this package, following Go idiom
// ---------------------------------------------------------------------------

// s3API is the subset of the S3 client used by the uploader.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// fileOpener abstracts opening local files for upload.
type fileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to standard library
// ---------------------------------------------------------------------------

// Compile-time interface verification.
var (
	_ s3API      = (*s3.Client)(nil)
	_ fileOpener = osFileOpener{}
)

// osFileOpener implements fileOpener using the os package.
type osFileOpener struct{}

func (osFileOpener) Open(name string) (io.ReadCloser, error) {
	// #nosec G304 -- paths are pipeline-owned temp files, not user input
	return os.Open(name)
}
