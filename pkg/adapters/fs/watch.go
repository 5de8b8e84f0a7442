package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/inspekt/pkg/core"
)

// DefaultWatchPattern matches every metadata artifact.
const DefaultWatchPattern = MetadataPrefix + "*"

// Watch reports each record whose metadata appears in the storage directory
// and whose name matches pattern (doublestar syntax, matched against the base
// name). The channel is closed when ctx is cancelled or the watcher fails.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = DefaultWatchPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	events := make(chan core.Event)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, pattern, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(err)
			return
		}
		if r.config.Logger.Enabled(ctx, slog.LevelDebug) {
			r.config.Logger.Error("watcher failed", "error", err, "stack", string(debug.Stack()))
			return
		}
		r.config.Logger.Error("watcher failed", "error", err)
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, events chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			e, ok := r.mapEvent(event, pattern)
			if !ok {
				continue
			}
			select {
			case events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.config.Logger.Error("fsnotify error", "error", wErr)
			if r.config.ErrorHandler != nil {
				r.config.ErrorHandler(wErr)
			}
		}
	}
}

// mapEvent turns a filesystem event into a commit event. Only newly created
// metadata artifacts count; staging files and photos are ignored.
func (r *Repository) mapEvent(event fsnotify.Event, pattern string) (core.Event, bool) {
	if !event.Has(fsnotify.Create) {
		return core.Event{}, false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return core.Event{}, false
	}
	tok, ext, ok := ParseMetadataName(name)
	if !ok {
		return core.Event{}, false
	}
	if _, ok := r.serializer(ext); !ok {
		return core.Event{}, false
	}
	if match, _ := doublestar.Match(pattern, name); !match {
		return core.Event{}, false
	}

	r.config.Logger.Debug("record observed", "name", name)
	return core.Event{
		Type:      core.EventCommitted,
		Token:     tok,
		Name:      name,
		Timestamp: time.Now().Unix(),
	}, true
}

var _ core.Watchable = (*Repository)(nil)
