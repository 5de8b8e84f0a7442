package core

import "errors"

// Pipeline error taxonomy. Components wrap these with fmt.Errorf("...: %w")
// so callers match them with errors.Is.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCaptureFailed     = errors.New("capture failed")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrNotFound          = errors.New("no capture record found")
	ErrRenderFailed      = errors.New("render failed")

	// ErrSharingUnavailable is informational: the report still exists locally.
	ErrSharingUnavailable = errors.New("sharing is not available")

	ErrInvalidCategory     = errors.New("invalid category")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrReadOnly            = errors.New("storage is in read-only mode")
)
