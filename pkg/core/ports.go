package core

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Store persists capture records and selects them back.
// The filesystem adapter is the only implementation shipped, but the Service
// depends on nothing else.
type Store interface {
	// Initialize ensures the root storage location exists. Idempotent.
	Initialize(ctx context.Context) error

	// Commit relocates the photo and writes its metadata as one record.
	Commit(ctx context.Context, photo PhotoHandle, form FormState) (CaptureRecord, error)

	// SelectMostRecent returns the valid record with the largest token.
	SelectMostRecent(ctx context.Context) (CaptureRecord, error)

	// List returns all valid records, newest first.
	List(ctx context.Context) ([]CaptureRecord, error)
}

// PhotoReader exposes the bytes of a committed record's photo.
type PhotoReader interface {
	ReadPhoto(ctx context.Context, rec CaptureRecord) ([]byte, error)
}

// Watchable defines stores that can report new records as they appear.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// OrphanLister defines stores that can report photos left without metadata.
type OrphanLister interface {
	Orphans(ctx context.Context) ([]Token, error)
}

// Compiler renders one record into a document, in memory.
type Compiler interface {
	Compile(ctx context.Context, rec CaptureRecord) (RenderedDocument, error)
}

// Publisher persists a rendered document and hands it to the share surface.
type Publisher interface {
	Publish(ctx context.Context, doc RenderedDocument, rec CaptureRecord) (ExportResult, error)
}

// CaptureProvider produces a transient photo, or fails with ErrCaptureFailed
// or ErrPermissionDenied.
type CaptureProvider interface {
	Capture(ctx context.Context) (PhotoHandle, error)
}

// Coordinates is a GPS fix.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Label formats the coordinates the way reports show them.
func (c Coordinates) Label() string {
	return "Lat: " + strconv.FormatFloat(c.Latitude, 'f', -1, 64) +
		", Long: " + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// LocationProvider returns the current position, or fails with
// ErrPermissionDenied or ErrLocationUnavailable.
type LocationProvider interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// ShareSurface is the OS-level share sheet.
type ShareSurface interface {
	IsAvailable(ctx context.Context) bool
	Share(ctx context.Context, path string) error
}

// TokenSource hands out createdAt tokens. Every call returns a value strictly
// greater than the previous one.
type TokenSource interface {
	Next() Token
}

// Clock is a TokenSource backed by wall time in milliseconds. When the clock
// stalls or steps backwards it keeps counting from the last issued token.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last Token
}

// NewClock creates a Clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Next implements TokenSource.
func (c *Clock) Next() Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	tok := Token(c.now().UnixMilli())
	if tok <= c.last {
		tok = c.last + 1
	}
	c.last = tok
	return tok
}

// Observer receives the outcome of each workflow (e.g. metrics).
type Observer interface {
	ObserveCommit(err error)
	ObserveExport(res ExportResult, err error)
}
