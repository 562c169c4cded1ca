package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// mockS3 implements s3API, recording inputs.
type mockS3 struct {
	err error

	mu     sync.Mutex
	inputs []*s3.PutObjectInput
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, params)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) Inputs() []*s3.PutObjectInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputs
}

// stringOpener implements fileOpener returning fixed content.
type stringOpener struct {
	content string
	err     error
}

func (s stringOpener) Open(name string) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func testConfig() Config {
	return Config{
		AccountID:       "acct123",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
		Bucket:          "audio-bucket",
	}
}

func TestR2Uploader_Upload(t *testing.T) {
	t.Parallel()

	mock := &mockS3{}
	u := NewR2Uploader(testConfig(),
		WithS3Client(mock),
		WithFileOpener(stringOpener{content: "audio bytes"}),
	)

	url, err := u.Upload(context.Background(), "/tmp/audio_x.mp3", "audio_files/audio_x.mp3", "audio/mpeg")
	if err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}

	want := "https://audio-bucket.r2.cloudflarestorage.com/audio_files/audio_x.mp3"
	if url != want {
		t.Errorf("Upload() = %q, want %q", url, want)
	}

	inputs := mock.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("PutObject called %d times, want 1", len(inputs))
	}
	if got := *inputs[0].Bucket; got != "audio-bucket" {
		t.Errorf("PutObject bucket = %q, want %q", got, "audio-bucket")
	}
	if got := *inputs[0].Key; got != "audio_files/audio_x.mp3" {
		t.Errorf("PutObject key = %q, want %q", got, "audio_files/audio_x.mp3")
	}
	if got := *inputs[0].ContentType; got != "audio/mpeg" {
		t.Errorf("PutObject content type = %q, want %q", got, "audio/mpeg")
	}
}

func TestR2Uploader_UploadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		s3Err  error
		opener stringOpener
	}{
		{
			name:   "transport failure",
			s3Err:  errors.New("connection reset by peer"),
			opener: stringOpener{content: "audio"},
		},
		{
			name:   "local file unreadable",
			opener: stringOpener{err: errors.New("permission denied")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := NewR2Uploader(testConfig(),
				WithS3Client(&mockS3{err: tt.s3Err}),
				WithFileOpener(tt.opener),
			)

			_, err := u.Upload(context.Background(), "/tmp/a.mp3", "audio_files/a.mp3", "audio/mpeg")
			if !errors.Is(err, ErrUploadFailed) {
				t.Errorf("Upload() error = %v, want ErrUploadFailed", err)
			}
		})
	}
}

func TestObjectKey_Unique(t *testing.T) {
	t.Parallel()

	a := ObjectKey(".mp3")
	b := ObjectKey(".mp3")

	if a == b {
		t.Errorf("ObjectKey() returned duplicate keys: %q", a)
	}
	for _, key := range []string{a, b} {
		if !strings.HasPrefix(key, "audio_files/audio_") {
			t.Errorf("ObjectKey() = %q, want audio_files/audio_ prefix", key)
		}
		if !strings.HasSuffix(key, ".mp3") {
			t.Errorf("ObjectKey() = %q, want .mp3 suffix", key)
		}
	}
}
