package ffmpeg

// Notes:
// - Executor tests use an injected run function; no real ffmpeg is needed
// - defaultRun is exercised with commands that exist on all platforms
// - All tests can run in parallel since there's no global state modification

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecutor_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mockStderr string
		mockErr    error
		wantErr    bool
		wantInErr  string
	}{
		{
			name:       "success discards output",
			mockStderr: "frame=  100 fps=0.0",
			mockErr:    nil,
			wantErr:    false,
		},
		{
			name:       "failure wraps stderr",
			mockStderr: "Could not write header for output file",
			mockErr:    errors.New("exit status 1"),
			wantErr:    true,
			wantInErr:  "Could not write header",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := NewExecutor(
				WithRun(func(ctx context.Context, path string, args []string) (string, string, error) {
					return "", tt.mockStderr, tt.mockErr
				}),
			)

			err := executor.Run(context.Background(), "/usr/bin/ffmpeg", []string{"-i", "in.mp4"})

			if tt.wantErr {
				if err == nil {
					t.Fatal("Run() error = nil, want error")
				}
				if !strings.Contains(err.Error(), tt.wantInErr) {
					t.Errorf("Run() error = %q, want substring %q", err, tt.wantInErr)
				}
			} else if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
		})
	}
}

func TestExecutor_RunOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mockStdout string
		mockStderr string
		mockErr    error
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "returns stdout",
			mockStdout: `{"streams":[]}`,
			wantOutput: `{"streams":[]}`,
		},
		{
			name:       "returns empty output",
			mockStdout: "",
			wantOutput: "",
		},
		{
			name:       "failure wraps stderr",
			mockStderr: "No such file or directory",
			mockErr:    errors.New("exit status 1"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := NewExecutor(
				WithRun(func(ctx context.Context, path string, args []string) (string, string, error) {
					return tt.mockStdout, tt.mockStderr, tt.mockErr
				}),
			)

			got, err := executor.RunOutput(context.Background(), "/usr/bin/ffprobe", []string{"-show_streams"})

			if tt.wantErr {
				if err == nil {
					t.Fatal("RunOutput() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("RunOutput() unexpected error: %v", err)
			}
			if got != tt.wantOutput {
				t.Errorf("RunOutput() = %q, want %q", got, tt.wantOutput)
			}
		})
	}
}

func TestExecutor_Timeout(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(
		WithTimeout(10*time.Millisecond),
		WithRun(func(ctx context.Context, path string, args []string) (string, string, error) {
			<-ctx.Done()
			return "", "", ctx.Err()
		}),
	)

	err := executor.Run(context.Background(), "/usr/bin/ffmpeg", nil)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}

	_, err = executor.RunOutput(context.Background(), "/usr/bin/ffprobe", nil)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("RunOutput() error = %v, want ErrTimeout", err)
	}
}

func TestDefaultRun_RealCommand(t *testing.T) {
	t.Parallel()

	// Use a command which exists on all platforms.
	var cmd string
	var args []string
	if runtime.GOOS == "windows" {
		cmd = "cmd"
		args = []string{"/c", "echo hello"}
	} else {
		cmd = "echo"
		args = []string{"hello"}
	}

	stdout, _, err := defaultRun(context.Background(), cmd, args)
	if err != nil {
		t.Fatalf("defaultRun(%q) unexpected error: %v", cmd, err)
	}
	if !strings.Contains(stdout, "hello") {
		t.Errorf("defaultRun(%q) stdout = %q, want substring %q", cmd, stdout, "hello")
	}
}

func TestDefaultRun_CommandNotFound(t *testing.T) {
	t.Parallel()

	_, _, err := defaultRun(context.Background(), "/nonexistent/binary", nil)
	if err == nil {
		t.Fatal("defaultRun() error = nil, want error for missing binary")
	}
}
