package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/inspekt/pkg/core"
)

// DefaultMaxAttempts bounds the collision suffix search.
const DefaultMaxAttempts = 1000

// Sink persists a file under a new name and never replaces one. A taken
// name must yield an error matching os.ErrExist.
type Sink interface {
	WriteNew(ctx context.Context, name string, data []byte) (string, error)
}

// Options configures a Publisher.
type Options struct {
	Naming      Naming
	Share       core.ShareSurface // Nil means sharing is unavailable
	Validators  []Validator
	Location    *time.Location // Time zone of descriptive dates
	MaxAttempts int
	Logger      *slog.Logger
}

// Publisher persists rendered reports and hands them to the share surface.
type Publisher struct {
	sink Sink
	opts Options
}

// NewPublisher creates a Publisher writing into sink.
func NewPublisher(sink Sink, opts Options) *Publisher {
	if opts.Naming == "" {
		opts.Naming = NamingTimestamp
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{sink: sink, opts: opts}
}

// Publish writes doc as a new file and offers it for sharing.
//
// A missing share surface is not a failure: the result carries
// core.ErrSharingUnavailable in Sharing and the error is nil. A failing
// share returns the error with Path still set, since the file exists.
func (p *Publisher) Publish(ctx context.Context, doc core.RenderedDocument, rec core.CaptureRecord) (core.ExportResult, error) {
	for _, v := range p.opts.Validators {
		if err := v.Validate(doc); err != nil {
			return core.ExportResult{}, fmt.Errorf("%w: %w", core.ErrRenderFailed, err)
		}
	}

	path, err := p.persist(ctx, doc, rec)
	if err != nil {
		return core.ExportResult{}, err
	}
	res := core.ExportResult{Path: path}

	if p.opts.Share == nil || !p.opts.Share.IsAvailable(ctx) {
		p.opts.Logger.Info("report saved, sharing unavailable", "path", path)
		res.Sharing = core.ErrSharingUnavailable
		return res, nil
	}

	if err := p.opts.Share.Share(ctx, path); err != nil {
		return res, fmt.Errorf("failed to share %s: %w", path, err)
	}
	res.Shared = true
	return res, nil
}

func (p *Publisher) persist(ctx context.Context, doc core.RenderedDocument, rec core.CaptureRecord) (string, error) {
	base := p.opts.Naming.BaseName(rec, p.opts.Location)

	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := FileName(base, doc.Ext, attempt)
		path, err := p.sink.WriteNew(ctx, name, doc.Data)
		if err == nil {
			p.opts.Logger.Debug("report persisted", "path", path, "attempt", attempt)
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			if errors.Is(err, core.ErrPersistenceFailed) {
				return "", err
			}
			return "", fmt.Errorf("%w: %w", core.ErrPersistenceFailed, err)
		}
	}
	return "", fmt.Errorf("%w: no free name for %s%s after %d attempts",
		core.ErrPersistenceFailed, base, doc.Ext, p.opts.MaxAttempts)
}

var _ core.Publisher = (*Publisher)(nil)
