package fs

import (
	"sort"

	"github.com/aretw0/introspection"

	"github.com/aretw0/inspekt/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path           string     `json:"path"`
	ReadOnly       bool       `json:"read_only"`
	MetadataFormat string     `json:"metadata_format"`
	Serializers    []string   `json:"serializers"`
	WatcherActive  bool       `json:"watcher_active"`
	LastToken      core.Token `json:"last_token,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		Path:           r.Path,
		ReadOnly:       r.config.ReadOnly,
		MetadataFormat: r.config.MetadataFormat,
		Serializers:    serializers,
		WatcherActive:  r.watcherActive,
		LastToken:      r.lastToken,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
