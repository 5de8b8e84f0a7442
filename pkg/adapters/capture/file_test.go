package capture_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/adapters/capture"
	"github.com/aretw0/inspekt/pkg/core"
)

func writeJPEG(t *testing.T, path string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return buf.Bytes()
}

func TestFileCapture(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "camera.jpg")
	want := writeJPEG(t, src)

	p := capture.NewFile(src)
	p.StagingDir = t.TempDir()

	photo, err := p.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.StagingDir, filepath.Dir(photo.Path))

	got, err := os.ReadFile(photo.Path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.FileExists(t, src, "source is copied, not moved")
}

func TestFileCaptureFailures(t *testing.T) {
	t.Run("Missing Source", func(t *testing.T) {
		_, err := capture.NewFile(filepath.Join(t.TempDir(), "none.jpg")).Capture(context.Background())
		assert.ErrorIs(t, err, core.ErrCaptureFailed)
	})

	t.Run("Not A JPEG", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "fake.jpg")
		require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))
		_, err := capture.NewFile(src).Capture(context.Background())
		assert.ErrorIs(t, err, core.ErrCaptureFailed)
	})
}
