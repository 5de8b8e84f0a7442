package metrics_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/metrics"
)

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("commit: %w", core.ErrPersistenceFailed), "persistence_failed"},
		{fmt.Errorf("%w: %w", core.ErrPersistenceFailed, core.ErrReadOnly), "read_only"},
		{core.ErrNotFound, "not_found"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, metrics.Result(tt.err))
	}
}

func TestCounters(t *testing.T) {
	m := metrics.New()

	m.ObserveCommit(nil)
	m.ObserveCommit(nil)
	m.ObserveCommit(core.ErrCaptureFailed)
	m.ObserveExport(core.ExportResult{Path: "a.pdf", Sharing: core.ErrSharingUnavailable}, nil)
	m.ObserveExport(core.ExportResult{Path: "b.pdf", Shared: true}, nil)
	m.ObserveExport(core.ExportResult{}, core.ErrNotFound)

	series, err := testutil.GatherAndCount(m.Registry(), "inspekt_commits_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
	assert.Equal(t, 2.0, counter(t, m, "inspekt_commits_total", "ok"))
	assert.Equal(t, 1.0, counter(t, m, "inspekt_exports_total", "not_found"))

	count, err := testutil.GatherAndCount(m.Registry(), "inspekt_shares_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func counter(t *testing.T, m *metrics.Metrics, name, label string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveCommit(nil)

	path := filepath.Join(t.TempDir(), "inspekt.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `inspekt_commits_total{result="ok"} 1`)
}
