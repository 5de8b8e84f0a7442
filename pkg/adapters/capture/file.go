// Package capture provides camera stand-ins that turn existing JPEG files
// into transient photos ready to be committed.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register the JPEG decoder for DecodeConfig
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/inspekt/pkg/core"
)

// StagingPrefix names transient photos in the staging directory.
const StagingPrefix = "inspekt-capture-"

// File captures a photo by copying a JPEG from disk into a staging
// directory. The copy is transient until committed.
type File struct {
	Source string
	// StagingDir defaults to the system temp dir.
	StagingDir string
	Logger     *slog.Logger
}

// NewFile creates a capture provider for source.
func NewFile(source string) *File {
	return &File{Source: source}
}

// Capture validates the source as JPEG and stages a copy.
func (f *File) Capture(ctx context.Context) (core.PhotoHandle, error) {
	if err := ctx.Err(); err != nil {
		return core.PhotoHandle{}, err
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	in, err := os.Open(f.Source)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return core.PhotoHandle{}, fmt.Errorf("%w: %s", core.ErrPermissionDenied, f.Source)
		}
		return core.PhotoHandle{}, fmt.Errorf("%w: %w", core.ErrCaptureFailed, err)
	}
	defer in.Close()

	cfg, format, err := image.DecodeConfig(in)
	if err != nil || format != "jpeg" {
		return core.PhotoHandle{}, fmt.Errorf("%w: %s is not a JPEG image", core.ErrCaptureFailed, f.Source)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return core.PhotoHandle{}, fmt.Errorf("%w: %w", core.ErrCaptureFailed, err)
	}

	tmp, err := os.CreateTemp(f.StagingDir, StagingPrefix+"*.jpg")
	if err != nil {
		return core.PhotoHandle{}, fmt.Errorf("%w: failed to stage photo: %w", core.ErrCaptureFailed, err)
	}
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return core.PhotoHandle{}, fmt.Errorf("%w: failed to stage photo: %w", core.ErrCaptureFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return core.PhotoHandle{}, fmt.Errorf("%w: failed to stage photo: %w", core.ErrCaptureFailed, err)
	}

	logger.Debug("photo staged", "source", f.Source, "path", tmp.Name(), "width", cfg.Width, "height", cfg.Height)
	return core.PhotoHandle{Path: tmp.Name()}, nil
}

var _ core.CaptureProvider = (*File)(nil)
