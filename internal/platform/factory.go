package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/inspekt/pkg/adapters/fs"
	"github.com/aretw0/inspekt/pkg/adapters/share"
	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/export"
	"github.com/aretw0/inspekt/pkg/report"
)

// New wires the capture and export pipeline rooted at root.
//
//	svc, err := inspekt.New("./captures", inspekt.WithLocale("nl"))
//
// An empty root falls back to the configured one.
func New(root string, opts ...Option) (*core.Service, error) {
	o := apply(opts)
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := initStore(root, o)
	if err != nil {
		return nil, err
	}

	photos, ok := store.(core.PhotoReader)
	if !ok {
		return nil, fmt.Errorf("store %T cannot read photos", store)
	}
	compiler, err := newCompiler(photos, o)
	if err != nil {
		return nil, err
	}

	sink, ok := store.(export.Sink)
	if !ok {
		return nil, fmt.Errorf("store %T cannot persist reports", store)
	}
	publisher, err := newPublisher(sink, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(core.ServiceConfig{
		Store:     store,
		Compiler:  compiler,
		Publisher: publisher,
		Logger:    o.logger,
		Observer:  o.observer,
	}), nil
}

// Init prepares the storage directory and returns the store, without the
// report side of the pipeline.
func Init(root string, opts ...Option) (core.Store, error) {
	o := apply(opts)
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return initStore(root, o)
}

func initStore(root string, o *options) (core.Store, error) {
	store := o.store
	if store == nil {
		repo, err := initFS(root, o)
		if err != nil {
			return nil, err
		}
		store = repo
	}

	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// initFS builds the filesystem adapter, applying dev safety to the path.
func initFS(root string, o *options) (*fs.Repository, error) {
	if root == "" {
		root = o.config.Root
	}

	// Read-only access is inherently safe.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveRootPath(root, useTemp)

	if IsDevRun() {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if useTemp && resolved != root {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", root, "resolved_path", resolved)
	}

	repo := fs.NewRepository(fs.Config{
		Path:           resolved,
		MustExist:      o.mustExist,
		ReadOnly:       o.readOnly,
		Logger:         o.logger,
		MetadataFormat: o.config.MetadataFormat,
		Tokens:         o.tokens,
		ErrorHandler:   o.errorHandler,
	})
	for ext, s := range o.serializers {
		repo.RegisterSerializer(ext, s)
	}
	return repo, nil
}

func newCompiler(photos core.PhotoReader, o *options) (*report.Compiler, error) {
	locale, err := report.ParseLocale(o.config.Report.Locale)
	if err != nil {
		return nil, err
	}
	style, err := report.ParseDateStyle(o.config.Report.DateStyle)
	if err != nil {
		return nil, err
	}
	loc, err := o.config.Location()
	if err != nil {
		return nil, err
	}

	return report.NewCompiler(photos, report.Options{
		Engine:    newEngine(o),
		Locale:    locale,
		DateStyle: style,
		Location:  loc,
		Logger:    o.logger,
	})
}

func newEngine(o *options) report.Engine {
	if o.engine != nil {
		return o.engine
	}
	if o.config.Report.Engine == report.EnginePDF {
		e := report.NewChromeEngine()
		e.ExecPath = o.config.Report.ChromePath
		e.NoSandbox = o.config.Report.ChromeNoSandbox
		return e
	}
	return report.NewHTMLEngine()
}

func newPublisher(sink export.Sink, o *options) (*export.Publisher, error) {
	naming, err := export.ParseNaming(o.config.Export.Naming)
	if err != nil {
		return nil, err
	}
	loc, err := o.config.Location()
	if err != nil {
		return nil, err
	}

	surface := o.share
	if surface == nil {
		if cmd := share.ParseCommand(o.config.Export.ShareCommand); cmd != nil {
			cmd.Logger = o.logger
			surface = cmd
		} else {
			surface = share.None{}
		}
	}

	var validators []export.Validator
	if o.config.Export.ValidatePDF {
		validators = append(validators, export.NewPDFValidator())
	}

	return export.NewPublisher(sink, export.Options{
		Naming:     naming,
		Share:      surface,
		Validators: validators,
		Location:   loc,
		Logger:     o.logger,
	}), nil
}
