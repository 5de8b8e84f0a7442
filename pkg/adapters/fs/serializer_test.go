package fs_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/adapters/fs"
	"github.com/aretw0/inspekt/pkg/core"
)

func TestSerializers(t *testing.T) {
	rec := core.CaptureRecord{
		PhotoRef:       "photo_1700000000123.jpg",
		TechnicianName: "Jan",
		Description:    "Exposed cable",
		LocationLabel:  "Lat: 52.1, Long: 4.3",
		Category:       core.CategoryAerialCables,
		CreatedAt:      1700000000123,
	}
	want := fs.NewMetadata(rec)

	for ext, s := range fs.DefaultSerializers() {
		t.Run(ext, func(t *testing.T) {
			data, err := s.Serialize(want)
			require.NoError(t, err)

			got, err := s.Parse(bytes.NewReader(data))
			require.NoError(t, err)
			if diff := cmp.Diff(want, *got); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewMetadata(t *testing.T) {
	m := fs.NewMetadata(core.CaptureRecord{
		PhotoRef:  "photo_1700000000123.jpg",
		Category:  core.CategoryGasPipes,
		CreatedAt: 1700000000123,
	})
	require.Equal(t, "2023-11-14T22:13:20.123Z", m.Timestamp)
	require.Equal(t, "GasPipes", m.Category)
	require.Equal(t, int64(1700000000123), m.CreatedAt)
}

func TestJSONSerializerRejectsGarbage(t *testing.T) {
	_, err := fs.NewJSONSerializer().Parse(bytes.NewReader([]byte("{not json")))
	require.Error(t, err)
}
