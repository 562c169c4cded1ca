// Package storage publishes conversion results to Cloudflare R2, an
// S3-compatible object store. When credentials are absent the pipeline keeps
// results local; this package only gets involved once a complete Config
// exists.
package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectPrefix groups uploaded audio under one bucket directory.
const objectPrefix = "audio_files"

// ObjectKey generates a unique bucket key for an output file with the given
// extension (including the dot). Keys never collide across concurrent
// requests; results are addressed by kind, not by a stable token.
func ObjectKey(ext string) string {
	return fmt.Sprintf("%s/audio_%s%s", objectPrefix, uuid.NewString(), ext)
}

// R2Uploader uploads local files to an R2 bucket.
type R2Uploader struct {
	client s3API
	files  fileOpener
	bucket string
}

// R2UploaderOption configures an R2Uploader.
type R2UploaderOption func(*R2Uploader)

// WithS3Client sets the S3 client (for testing).
func WithS3Client(c s3API) R2UploaderOption {
	return func(u *R2Uploader) { u.client = c }
}

// WithFileOpener sets the file opener (for testing).
func WithFileOpener(fo fileOpener) R2UploaderOption {
	return func(u *R2Uploader) { u.files = fo }
}

// NewR2Uploader creates an uploader for the bucket in cfg.
// cfg must be complete; call cfg.Validate first.
func NewR2Uploader(cfg Config, opts ...R2UploaderOption) *R2Uploader {
	u := &R2Uploader{
		bucket: cfg.Bucket,
		files:  osFileOpener{},
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.client == nil {
		u.client = s3.New(s3.Options{
			Region:       "auto",
			BaseEndpoint: aws.String(cfg.Endpoint()),
			Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		})
	}
	return u
}

// Upload PUTs the local file under key and returns its retrievable URL.
// Transport and auth failures return ErrUploadFailed; the caller decides
// whether that is terminal (it is, whenever storage was configured).
func (u *R2Uploader) Upload(ctx context.Context, localPath, key, contentType string) (string, error) {
	f, err := u.files.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrUploadFailed, localPath, err)
	}
	defer func() { _ = f.Close() }()

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: put %s: %v", ErrUploadFailed, key, err)
	}

	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s", u.bucket, key), nil
}
