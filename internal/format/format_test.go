package format

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "seconds only", d: 42 * time.Second, want: "00:42"},
		{name: "minutes and seconds", d: 3*time.Minute + 5*time.Second, want: "03:05"},
		{name: "hours", d: 2*time.Hour + 30*time.Minute + 1*time.Second, want: "02:30:01"},
		{name: "zero", d: 0, want: "00:00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Duration(tt.d); got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "bytes", bytes: 512, want: "512 bytes"},
		{name: "kilobytes", bytes: 10 * 1024, want: "10 KB"},
		{name: "megabytes", bytes: 3 * 1024 * 1024, want: "3 MB"},
		{name: "zero", bytes: 0, want: "0 bytes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Size(tt.bytes); got != tt.want {
				t.Errorf("Size(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
