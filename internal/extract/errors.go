package extract

import "errors"

// ErrUnsupportedFormat indicates a target format outside mp3/aac/wav/ogg.
var ErrUnsupportedFormat = errors.New("unsupported target format")

// ErrEncodingFailed indicates both the stream-copy fast path and the
// re-encode fallback failed. There is no further fallback.
var ErrEncodingFailed = errors.New("audio encoding failed")
