package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ServiceConfig wires the collaborators of a Service.
type ServiceConfig struct {
	Store     Store
	Compiler  Compiler
	Publisher Publisher
	Logger    *slog.Logger
	Observer  Observer
}

// Service sequences the capture and export workflows.
// Each workflow runs to completion or stops at the first failing step,
// leaving already committed artifacts on disk.
type Service struct {
	mu        sync.RWMutex
	store     Store
	compiler  Compiler
	publisher Publisher
	logger    *slog.Logger
	observer  Observer

	commits int
	exports int
}

// NewService creates a new Service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:     cfg.Store,
		compiler:  cfg.Compiler,
		publisher: cfg.Publisher,
		logger:    logger,
		observer:  cfg.Observer,
	}
}

// Initialize ensures the root storage directory exists.
func (s *Service) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

// ResolveLocation asks the provider for a fix and formats it as a label.
func (s *Service) ResolveLocation(ctx context.Context, provider LocationProvider) (string, error) {
	coords, err := provider.Locate(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrLocationUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	return coords.Label(), nil
}

// Capture takes a photo from the provider and commits it with the form.
// The service owns the provider's handle: if the commit fails the staged
// file is removed so it does not linger outside the store.
func (s *Service) Capture(ctx context.Context, provider CaptureProvider, form FormState) (CaptureRecord, error) {
	photo, err := provider.Capture(ctx)
	if err != nil {
		if !errors.Is(err, ErrCaptureFailed) && !errors.Is(err, ErrPermissionDenied) {
			err = fmt.Errorf("%w: %w", ErrCaptureFailed, err)
		}
		s.observeCommit(err)
		return CaptureRecord{}, err
	}
	rec, err := s.Commit(ctx, photo, form)
	if err != nil {
		s.discard(photo)
		return CaptureRecord{}, err
	}
	return rec, nil
}

// discard removes a staged photo. A missing file means the store already
// moved it.
func (s *Service) discard(photo PhotoHandle) {
	if photo.Path == "" {
		return
	}
	if err := os.Remove(photo.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove staged photo", "path", photo.Path, "error", err)
	}
}

// Commit persists an already captured photo with the form.
func (s *Service) Commit(ctx context.Context, photo PhotoHandle, form FormState) (CaptureRecord, error) {
	if err := ctx.Err(); err != nil {
		return CaptureRecord{}, err
	}

	rec, err := s.store.Commit(ctx, photo, form)
	s.observeCommit(err)
	if err != nil {
		s.logger.Error("commit failed", "error", err)
		return CaptureRecord{}, err
	}

	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
	return rec, nil
}

// SelectMostRecent returns the record an export would report on.
func (s *Service) SelectMostRecent(ctx context.Context) (CaptureRecord, error) {
	return s.store.SelectMostRecent(ctx)
}

// List returns all valid records, newest first.
func (s *Service) List(ctx context.Context) ([]CaptureRecord, error) {
	return s.store.List(ctx)
}

// Export selects the most recent record, compiles it and publishes the
// document. A missing share surface is reported in the result, not as error.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	res, err := s.export(ctx)
	s.observeExport(res, err)
	if err != nil {
		s.logger.Error("export failed", "error", err)
		return res, err
	}

	s.mu.Lock()
	s.exports++
	s.mu.Unlock()
	return res, nil
}

func (s *Service) export(ctx context.Context) (ExportResult, error) {
	rec, err := s.store.SelectMostRecent(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}

	doc, err := s.compiler.Compile(ctx, rec)
	if err != nil {
		return ExportResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}

	res, err := s.publisher.Publish(ctx, doc, rec)
	if err != nil {
		return res, err
	}

	s.logger.Info("report exported", "token", rec.CreatedAt, "path", res.Path, "shared", res.Shared)
	return res, nil
}

// Watch observes new records if the store supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Orphans lists photo tokens without valid metadata if the store tracks them.
func (s *Service) Orphans(ctx context.Context) ([]Token, error) {
	o, ok := s.store.(OrphanLister)
	if !ok {
		return nil, errors.New("store does not report orphans")
	}
	return o.Orphans(ctx)
}

func (s *Service) observeCommit(err error) {
	if s.observer != nil {
		s.observer.ObserveCommit(err)
	}
}

func (s *Service) observeExport(res ExportResult, err error) {
	if s.observer != nil {
		s.observer.ObserveExport(res, err)
	}
}
