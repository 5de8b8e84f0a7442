package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/inspekt/pkg/core"
)

// Options configures a Compiler.
type Options struct {
	Engine    Engine // Defaults to HTML
	Locale    Locale
	DateStyle DateStyle
	Location  *time.Location // Time zone of dmy dates; defaults to UTC
	Logger    *slog.Logger
}

// Compiler turns a capture record into a rendered document.
type Compiler struct {
	photos core.PhotoReader
	engine Engine
	labels Labels
	locale Locale
	style  DateStyle
	loc    *time.Location
	logger *slog.Logger
}

// NewCompiler creates a Compiler reading photos from photos.
func NewCompiler(photos core.PhotoReader, opts Options) (*Compiler, error) {
	if photos == nil {
		return nil, fmt.Errorf("photo reader is required")
	}
	if opts.Engine == nil {
		opts.Engine = NewHTMLEngine()
	}
	if opts.Locale == "" {
		opts.Locale = LocaleEnglish
	}
	if _, ok := labels[opts.Locale]; !ok {
		return nil, fmt.Errorf("unsupported locale %q", opts.Locale)
	}
	if opts.DateStyle == "" {
		opts.DateStyle = DateISO
	}
	if _, err := ParseDateStyle(string(opts.DateStyle)); err != nil {
		return nil, err
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Compiler{
		photos: photos,
		engine: opts.Engine,
		labels: LabelsFor(opts.Locale),
		locale: opts.Locale,
		style:  opts.DateStyle,
		loc:    opts.Location,
		logger: opts.Logger,
	}, nil
}

// Engine returns the engine in use.
func (c *Compiler) Engine() Engine {
	return c.engine
}

// Layout builds the report content for rec with photo embedded.
// Fields come in a fixed order; empty values show the placeholder.
func (c *Compiler) Layout(rec core.CaptureRecord, photo []byte) Layout {
	lb := c.labels
	return Layout{
		Lang:  string(c.locale),
		Title: lb.Title,
		Fields: []Field{
			{Label: lb.Technician, Value: lb.Value(rec.TechnicianName)},
			{Label: lb.Description, Value: lb.Value(rec.Description)},
			{Label: lb.Location, Value: lb.Value(rec.LocationLabel)},
			{Label: lb.Category, Value: lb.CategoryName(rec.Category)},
			{Label: lb.Date, Value: FormatDate(rec.CreatedAt, c.style, c.loc)},
		},
		Photo: Photo{
			Heading: lb.Photo,
			Ref:     rec.PhotoRef,
			DataURI: dataURI(photo),
		},
	}
}

// Compile reads rec's photo and renders the report in memory.
// Every failure matches core.ErrRenderFailed.
func (c *Compiler) Compile(ctx context.Context, rec core.CaptureRecord) (core.RenderedDocument, error) {
	photo, err := c.photos.ReadPhoto(ctx, rec)
	if err != nil {
		return core.RenderedDocument{}, fmt.Errorf("%w: failed to read photo %s: %w", core.ErrRenderFailed, rec.PhotoRef, err)
	}
	if len(photo) == 0 {
		return core.RenderedDocument{}, fmt.Errorf("%w: photo %s is empty", core.ErrRenderFailed, rec.PhotoRef)
	}

	data, err := c.engine.Render(ctx, c.Layout(rec, photo))
	if err != nil {
		return core.RenderedDocument{}, fmt.Errorf("%w: %s engine: %w", core.ErrRenderFailed, c.engine.Name(), err)
	}

	c.logger.Debug("report rendered", "token", rec.CreatedAt, "engine", c.engine.Name(), "bytes", len(data))
	return core.RenderedDocument{
		Data:      data,
		MediaType: c.engine.MediaType(),
		Ext:       c.engine.Ext(),
		CreatedAt: rec.CreatedAt,
	}, nil
}

func dataURI(photo []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(photo)
}

var _ core.Compiler = (*Compiler)(nil)
