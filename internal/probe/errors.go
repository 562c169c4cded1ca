package probe

import "errors"

// ErrInvalidInput indicates the input file could not be opened or probed.
var ErrInvalidInput = errors.New("input file cannot be probed")

// ErrNoAudioStream indicates the probe found no audio stream in the input.
var ErrNoAudioStream = errors.New("input file contains no audio stream")
