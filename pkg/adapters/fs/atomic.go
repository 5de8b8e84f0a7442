package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary staging files.
	TempFilePrefix = "inspekt-tmp-"
)

// writeFileExclusive writes data to filename without ever replacing an
// existing file. The data is staged in a temp file in the same directory,
// synced, and then linked into place, so readers never observe a partial file.
// If filename already exists the returned error matches os.ErrExist.
func writeFileExclusive(filename string, data []byte, perm os.FileMode) error {
	return writeExclusiveFrom(filename, bytes.NewReader(data), perm)
}

func writeExclusiveFrom(filename string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up the staging name in every case

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	return linkNoClobber(tmpFile.Name(), filename)
}

// linkNoClobber places src at dst, failing with os.ErrExist if dst is taken.
// Filesystems without hard links fall back to a checked rename; the storage
// directory has a single writer, so the check cannot race another commit.
func linkNoClobber(src, dst string) error {
	err := os.Link(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("refusing to overwrite %s: %w", dst, os.ErrExist)
	}

	if _, statErr := os.Lstat(dst); statErr == nil {
		return fmt.Errorf("refusing to overwrite %s: %w", dst, os.ErrExist)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", dst, err)
	}
	return nil
}

// moveFileExclusive relocates src to dst without replacing dst.
// It links when both paths share a filesystem and copies otherwise.
// sourceRemoved is false when dst was written but src could not be deleted.
func moveFileExclusive(src, dst string, perm os.FileMode) (sourceRemoved bool, err error) {
	if err := os.Link(src, dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, fmt.Errorf("refusing to overwrite %s: %w", dst, os.ErrExist)
		}

		in, err := os.Open(src)
		if err != nil {
			return false, fmt.Errorf("failed to open source: %w", err)
		}
		err = writeExclusiveFrom(dst, in, perm)
		in.Close()
		if err != nil {
			return false, err
		}
	}

	if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
		return false, nil
	}
	return true, nil
}
