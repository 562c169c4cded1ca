package pipeline

import (
	"fmt"
	"io"
	"os"
)

// tempDirCreator creates temporary directories.
type tempDirCreator interface {
	MkdirTemp(dir, pattern string) (string, error)
}

// fileMover moves files and removes directories.
type fileMover interface {
	Move(oldpath, newpath string) error
	RemoveAll(path string) error
}

// --- Default implementations using real OS functions ---

// Compile-time interface verification.
var (
	_ tempDirCreator = osTempDirCreator{}
	_ fileMover      = osFileMover{}
)

// osTempDirCreator implements tempDirCreator using os.MkdirTemp.
type osTempDirCreator struct{}

func (osTempDirCreator) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

// osFileMover implements fileMover. Move tries a rename first and falls back
// to copy+remove when source and destination are on different filesystems
// (temp dirs often are).
type osFileMover struct{}

func (osFileMover) Move(oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err == nil {
		return nil
	}
	return copyAndRemove(oldpath, newpath)
}

func (osFileMover) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func copyAndRemove(oldpath, newpath string) error {
	// #nosec G304 -- both paths are pipeline-owned
	src, err := os.Open(oldpath)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	defer func() { _ = src.Close() }()

	// #nosec G302 G304 -- user-requested output file with standard permissions
	dst, err := os.OpenFile(newpath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(newpath)
		return fmt.Errorf("move: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(newpath)
		return fmt.Errorf("move: %w", err)
	}

	return os.Remove(oldpath)
}
