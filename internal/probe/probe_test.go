package probe

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// mockOutputter implements commandOutputter with a canned response.
type mockOutputter struct {
	output string
	err    error

	mu       sync.Mutex
	calls    int
	lastArgs []string
}

func (m *mockOutputter) RunOutput(ctx context.Context, path string, args []string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastArgs = args
	m.mu.Unlock()
	return m.output, m.err
}

const probeJSONWithAudio = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "44100", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "12.48", "size": "1048576", "bit_rate": "672000"}
}`

const probeJSONVideoOnly = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"}
  ],
  "format": {"filename": "clip.mov", "format_name": "mov", "duration": "3.0"}
}`

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		output    string
		execErr   error
		wantErr   error
		wantAudio bool
		wantCodec string
	}{
		{
			name:      "input with audio stream",
			output:    probeJSONWithAudio,
			wantAudio: true,
			wantCodec: "aac",
		},
		{
			name:      "input without audio stream",
			output:    probeJSONVideoOnly,
			wantAudio: false,
			wantCodec: "",
		},
		{
			name:    "unreadable input",
			execErr: errors.New("exit status 1"),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "garbage output",
			output:  "not json",
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockOutputter{output: tt.output, err: tt.execErr}
			p := NewProber("/usr/bin/ffprobe", WithExecutor(mock))

			result, err := p.Probe(context.Background(), "clip.mp4")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Probe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Probe() unexpected error: %v", err)
			}
			if got := result.HasAudio(); got != tt.wantAudio {
				t.Errorf("HasAudio() = %v, want %v", got, tt.wantAudio)
			}
			if got := result.AudioCodec(); got != tt.wantCodec {
				t.Errorf("AudioCodec() = %q, want %q", got, tt.wantCodec)
			}
		})
	}
}

func TestProber_ProbeArgs(t *testing.T) {
	t.Parallel()

	mock := &mockOutputter{output: probeJSONWithAudio}
	p := NewProber("/usr/bin/ffprobe", WithExecutor(mock))

	if _, err := p.Probe(context.Background(), "input.webm"); err != nil {
		t.Fatalf("Probe() unexpected error: %v", err)
	}

	want := []string{"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", "input.webm"}
	if len(mock.lastArgs) != len(want) {
		t.Fatalf("Probe() args = %v, want %v", mock.lastArgs, want)
	}
	for i := range want {
		if mock.lastArgs[i] != want[i] {
			t.Errorf("Probe() args[%d] = %q, want %q", i, mock.lastArgs[i], want[i])
		}
	}
}

func TestResult_Duration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		want    float64
		wantErr bool
	}{
		{name: "parses duration", format: Format{Duration: "12.48"}, want: 12.48},
		{name: "missing duration", format: Format{}, wantErr: true},
		{name: "malformed duration", format: Format{Duration: "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Result{Format: tt.format}
			got, err := r.Duration()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Duration() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Duration() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}
