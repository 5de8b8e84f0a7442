package platform_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/internal/platform"
	"github.com/aretw0/inspekt/pkg/adapters/capture"
	"github.com/aretw0/inspekt/pkg/adapters/location"
	"github.com/aretw0/inspekt/pkg/core"
	"github.com/aretw0/inspekt/pkg/metrics"
)

type steppingClock struct{ next int64 }

func (c *steppingClock) Next() core.Token {
	c.next += 1000
	return core.Token(c.next)
}

func cameraFile(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	path := filepath.Join(t.TempDir(), "camera.jpg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestPipelineTwoCycles(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "captures")
	m := metrics.New()

	svc, err := platform.New(root,
		platform.WithTokenSource(&steppingClock{next: 1_700_000_000_000}),
		platform.WithLocale("nl"),
		platform.WithDateStyle("dmy"),
		platform.WithNaming("descriptive"),
		platform.WithObserver(m),
	)
	require.NoError(t, err)

	label, err := svc.ResolveLocation(ctx, location.NewStatic(52.37, 4.89))
	require.NoError(t, err)

	var reports []string
	for i, technician := range []string{"Jan", "Jan"} {
		provider := capture.NewFile(cameraFile(t))
		provider.StagingDir = t.TempDir()

		rec, err := svc.Capture(ctx, provider, core.FormState{
			TechnicianName: technician,
			LocationLabel:  label,
			Category:       core.CategoryGasPipes,
		})
		require.NoError(t, err, "cycle %d", i)

		res, err := svc.Export(ctx)
		require.NoError(t, err, "cycle %d", i)
		assert.ErrorIs(t, res.Sharing, core.ErrSharingUnavailable)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<strong>Locatie:</strong> Lat: 52.37, Long: 4.89")
		assert.Contains(t, string(data), rec.CreatedAt.Time().Format("02-01-2006"))
		reports = append(reports, filepath.Base(res.Path))
	}

	assert.Equal(t, []string{
		"Jan_GasPipes_14-11-2023.html",
		"Jan_GasPipes_14-11-2023_2.html",
	}, reports)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var photos, metadata int
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Name(), "photo_"):
			photos++
		case strings.HasPrefix(e.Name(), "metadata_"):
			metadata++
		}
	}
	assert.Equal(t, 2, photos)
	assert.Equal(t, 2, metadata)

	state := svc.State().(core.ServiceState)
	assert.Equal(t, 2, state.Commits)
	assert.Equal(t, 2, state.Exports)
	assert.Equal(t, "repository", state.StoreType)
}

func TestExportWithoutCaptures(t *testing.T) {
	svc, err := platform.New(t.TempDir())
	require.NoError(t, err)

	_, err = svc.Export(context.Background())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReadOnlyService(t *testing.T) {
	root := t.TempDir()
	svc, err := platform.New(root, platform.WithReadOnly(true))
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), core.PhotoHandle{Path: cameraFile(t)}, core.FormState{Category: core.CategoryGasPipes})
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := platform.New(t.TempDir(), platform.WithLocale("klingon"))
	assert.Error(t, err)
}

func TestMustExist(t *testing.T) {
	_, err := platform.Init(filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
	assert.ErrorIs(t, err, core.ErrPersistenceFailed)
}

func TestWatchThroughService(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := platform.New(t.TempDir())
	require.NoError(t, err)

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	_, err = svc.Commit(ctx, core.PhotoHandle{Path: cameraFile(t)}, core.FormState{Category: core.CategoryWaterPipes})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, core.EventCommitted, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
