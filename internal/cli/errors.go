package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidBitrate indicates a bitrate token like "192k" could not be parsed.
	ErrInvalidBitrate = errors.New("invalid bitrate")

	// ErrUnknownProfile indicates --profile named a profile that is not defined.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrOutputWithMultipleInputs indicates -o was combined with several inputs.
	ErrOutputWithMultipleInputs = errors.New("--output requires a single input file")
)
