// Package core holds the domain of the capture pipeline: records, the ports
// the pipeline consumes, and the Service that sequences capture and export.
package core

import (
	"strconv"
	"time"
)

// Token is the createdAt identifier of a capture record, in Unix milliseconds.
// It is assigned once per commit and names, pairs and orders the artifacts.
type Token int64

// Time returns the instant encoded by the token, in UTC.
func (t Token) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

func (t Token) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// PhotoHandle points at a transient photo produced by a capture provider.
// The Writer relocates the file; callers must not reuse the path afterwards.
type PhotoHandle struct {
	Path string
}

// FormState is the in-memory inspection form at the moment of capture.
type FormState struct {
	TechnicianName string
	Description    string
	LocationLabel  string
	Category       Category
}

// CaptureRecord is one committed photo + metadata pair. It is never mutated.
type CaptureRecord struct {
	// PhotoRef is the photo artifact's file name inside the root storage directory.
	PhotoRef       string
	TechnicianName string
	Description    string
	LocationLabel  string
	Category       Category
	CreatedAt      Token
}

// RenderedDocument is a report rendered entirely in memory.
type RenderedDocument struct {
	Data      []byte
	MediaType string
	// Ext is the file extension including the dot (e.g. ".pdf").
	Ext       string
	CreatedAt Token
}

// ExportResult describes a persisted report.
type ExportResult struct {
	Path string
	// Shared reports whether the document was handed to the share surface.
	Shared bool
	// Sharing carries ErrSharingUnavailable when no share surface exists.
	// It never signals a pipeline failure.
	Sharing error
}

// EventType represents the type of change observed in the storage directory.
type EventType string

const (
	EventCommitted EventType = "COMMITTED"
)

// Event is emitted by watchable stores when a record appears.
type Event struct {
	Type      EventType
	Token     Token
	Name      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}
