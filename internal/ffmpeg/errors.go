package ffmpeg

import "errors"

// ErrNotFound indicates the ffmpeg or ffprobe binary is not installed.
var ErrNotFound = errors.New("ffmpeg not found")

// ErrTimeout is returned when a tool invocation does not exit within the
// configured timeout.
var ErrTimeout = errors.New("ffmpeg did not exit within timeout")
