package inspekt

import (
	"log/slog"

	"github.com/aretw0/inspekt/internal/platform"
	"github.com/aretw0/inspekt/pkg/adapters/fs"
	"github.com/aretw0/inspekt/pkg/config"
	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/report"
)

// --- Types ---

// Service is the capture and export pipeline.
type Service = core.Service

// CaptureRecord is a committed photo with its form data.
type CaptureRecord = core.CaptureRecord

// FormState is the form filled in before a capture is committed.
type FormState = core.FormState

// ExportResult describes a persisted report.
type ExportResult = core.ExportResult

// --- Configuration ---

// Option defines a functional option for configuring inspekt.
type Option = platform.Option

// WithConfig applies file/environment settings loaded with pkg/config.
func WithConfig(cfg config.Config) Option {
	return platform.WithConfig(cfg)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithSerializer registers a metadata serializer for an extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithMetadataFormat selects the extension of newly written metadata.
func WithMetadataFormat(ext string) Option {
	return platform.WithMetadataFormat(ext)
}

// WithTokenSource replaces the clock that assigns record tokens.
func WithTokenSource(tokens core.TokenSource) Option {
	return platform.WithTokenSource(tokens)
}

// WithEngine overrides the report engine.
func WithEngine(engine report.Engine) Option {
	return platform.WithEngine(engine)
}

// WithLocale selects the report labels ("en" or "nl").
func WithLocale(locale string) Option {
	return platform.WithLocale(locale)
}

// WithDateStyle selects the report date format ("iso" or "dmy").
func WithDateStyle(style string) Option {
	return platform.WithDateStyle(style)
}

// WithNaming selects the report file naming ("timestamp" or "descriptive").
func WithNaming(naming string) Option {
	return platform.WithNaming(naming)
}

// WithShareSurface sets the share surface for exported reports.
func WithShareSurface(share core.ShareSurface) Option {
	return platform.WithShareSurface(share)
}

// WithObserver receives the outcome of every workflow.
func WithObserver(observer core.Observer) Option {
	return platform.WithObserver(observer)
}

// WithWatcherErrorHandler registers a callback for watcher runtime errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithMustExist requires the storage directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the dev sandbox used under `go run`/`go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Constructors ---

// New wires the pipeline rooted at root.
func New(root string, opts ...Option) (*Service, error) {
	return platform.New(root, opts...)
}

// Init creates the storage directory without the report side.
func Init(root string, opts ...Option) (core.Store, error) {
	return platform.Init(root, opts...)
}

// --- Safety & Utils ---

// ErrRootNotFound is returned by FindRoot when no inspekt.yaml exists above a directory.
var ErrRootNotFound = platform.ErrRootNotFound

// ResolveRootPath determines the actual storage directory based on safety rules.
func ResolveRootPath(userPath string, forceTemp bool) string {
	return platform.ResolveRootPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for the directory holding inspekt.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// FindConfig returns the nearest inspekt.yaml above startDir.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}
