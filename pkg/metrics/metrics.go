// Package metrics counts pipeline outcomes in a private Prometheus registry.
// There is no HTTP endpoint; counters are written to a node-exporter
// textfile on demand.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/inspekt/pkg/core"
)

const namespace = "inspekt"

// Metrics implements core.Observer.
type Metrics struct {
	registry *prometheus.Registry
	commits  *prometheus.CounterVec
	exports  *prometheus.CounterVec
	shares   *prometheus.CounterVec
}

// New creates the counters and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Capture commits by result.",
		}, []string{"result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Report exports by result.",
		}, []string{"result"}),
		shares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_total",
			Help:      "Share attempts of persisted reports by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.commits, m.exports, m.shares)
	return m
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveCommit(err error) {
	m.commits.WithLabelValues(Result(err)).Inc()
}

func (m *Metrics) ObserveExport(res core.ExportResult, err error) {
	m.exports.WithLabelValues(Result(err)).Inc()
	if res.Path == "" {
		return
	}
	switch {
	case res.Shared:
		m.shares.WithLabelValues("shared").Inc()
	case errors.Is(res.Sharing, core.ErrSharingUnavailable):
		m.shares.WithLabelValues("unavailable").Inc()
	case err != nil:
		m.shares.WithLabelValues("failed").Inc()
	}
}

// WriteTextfile writes all counters to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

var results = []struct {
	err   error
	label string
}{
	{core.ErrPermissionDenied, "permission_denied"},
	{core.ErrCaptureFailed, "capture_failed"},
	{core.ErrInvalidCategory, "invalid_category"},
	{core.ErrReadOnly, "read_only"},
	{core.ErrPersistenceFailed, "persistence_failed"},
	{core.ErrNotFound, "not_found"},
	{core.ErrRenderFailed, "render_failed"},
}

// Result maps a workflow error onto a bounded label value.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range results {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

var _ core.Observer = (*Metrics)(nil)
