package platform

import (
	"log/slog"

	"github.com/aretw0/inspekt/pkg/adapters/fs"
	"github.com/aretw0/inspekt/pkg/config"
	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/report"
)

// options holds the internal configuration for the inspekt service.
type options struct {
	store        core.Store
	logger       *slog.Logger
	config       config.Config
	serializers  map[string]fs.Serializer
	tokens       core.TokenSource
	engine       report.Engine
	share        core.ShareSurface
	observer     core.Observer
	errorHandler func(error)

	mustExist bool
	readOnly  bool
	forceTemp bool
	devSafety bool
}

// Option defines a functional option for configuring inspekt.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config:      config.Default(),
		serializers: make(map[string]fs.Serializer),
		devSafety:   true,
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfig replaces the file/environment settings (see pkg/config).
// Options applied after it still take precedence.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom storage adapter (e.g. a mock).
// If provided, the filesystem adapter is skipped and the report compiler
// needs the store to implement core.PhotoReader.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithSerializer registers a metadata serializer for an extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithMetadataFormat selects the extension of newly written metadata.
func WithMetadataFormat(ext string) Option {
	return func(o *options) {
		o.config.MetadataFormat = ext
	}
}

// WithTokenSource replaces the wall clock that assigns record tokens.
func WithTokenSource(tokens core.TokenSource) Option {
	return func(o *options) {
		o.tokens = tokens
	}
}

// WithEngine overrides the report engine chosen by configuration.
func WithEngine(engine report.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithLocale selects the report labels ("en" or "nl").
func WithLocale(locale string) Option {
	return func(o *options) {
		o.config.Report.Locale = locale
	}
}

// WithDateStyle selects the report date format ("iso" or "dmy").
func WithDateStyle(style string) Option {
	return func(o *options) {
		o.config.Report.DateStyle = style
	}
}

// WithNaming selects the report file naming ("timestamp" or "descriptive").
func WithNaming(naming string) Option {
	return func(o *options) {
		o.config.Export.Naming = naming
	}
}

// WithShareSurface sets the share surface. Without one, a share command
// from configuration is used, and without that sharing is unavailable.
func WithShareSurface(share core.ShareSurface) Option {
	return func(o *options) {
		o.share = share
	}
}

// WithObserver receives the outcome of every workflow (e.g. metrics).
func WithObserver(observer core.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithWatcherErrorHandler registers a callback for errors of the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithMustExist requires the storage directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Commits and exports return ErrReadOnly.
// 2. The storage directory is never created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the storage directory is re-rooted into a
// temporary directory so development runs never touch real captures.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
