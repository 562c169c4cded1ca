package extract

import (
	"fmt"
	"strings"
)

// Format is a target audio output format.
type Format string

// Supported target formats.
const (
	FormatMP3 Format = "mp3"
	FormatAAC Format = "aac"
	FormatWAV Format = "wav"
	FormatOGG Format = "ogg"
)

// formats maps each supported format to its encoder and MIME type.
// Encoder names match stock ffmpeg builds; libmp3lame and libvorbis
// ship with every common distribution build.
var formats = map[Format]struct {
	codec       string
	contentType string
}{
	FormatMP3: {codec: "libmp3lame", contentType: "audio/mpeg"},
	FormatAAC: {codec: "aac", contentType: "audio/aac"},
	FormatWAV: {codec: "pcm_s16le", contentType: "audio/wav"},
	FormatOGG: {codec: "libvorbis", contentType: "audio/ogg"},
}

// ParseFormat validates a user-supplied format token.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, SupportedList())
	}
	return f, nil
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Codec returns the ffmpeg encoder name used for re-encoding to this format.
func (f Format) Codec() string {
	return formats[f].codec
}

// ContentType returns the MIME type for upload metadata.
func (f Format) ContentType() string {
	return formats[f].contentType
}

// SupportedList returns a sorted, comma-separated list for error messages.
func SupportedList() string {
	// Fixed order keeps error messages deterministic.
	return "aac, mp3, ogg, wav"
}
