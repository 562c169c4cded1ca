package storage

import "errors"

// ErrNotConfigured indicates remote storage was required but one or more
// credential values are missing from the environment.
var ErrNotConfigured = errors.New("remote storage is not configured")

// ErrUploadFailed indicates the object store PUT failed (transport or auth).
var ErrUploadFailed = errors.New("upload to remote storage failed")
