package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
root: /data/inspections
report:
  locale: nl
  date_style: dmy
  timezone: Europe/Amsterdam
export:
  naming: descriptive
  validate_pdf: false
`)

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/data/inspections", cfg.Root)
	assert.Equal(t, "nl", cfg.Report.Locale)
	assert.Equal(t, "dmy", cfg.Report.DateStyle)
	assert.Equal(t, "descriptive", cfg.Export.Naming)
	assert.False(t, cfg.Export.ValidatePDF)
	assert.Equal(t, "html", cfg.Report.Engine, "unset keys keep defaults")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "root: from-file\nreport:\n  locale: nl\n")
	t.Setenv("INSPEKT_ROOT", "from-env")
	t.Setenv("INSPEKT_NAMING", "descriptive")

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Root)
	assert.Equal(t, "descriptive", cfg.Export.Naming)
	assert.Equal(t, "nl", cfg.Report.Locale)
}

func TestLoadErrors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})

	t.Run("Bad YAML", func(t *testing.T) {
		_, err := config.Load(context.Background(), writeConfig(t, "root: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("Bad Values", func(t *testing.T) {
		_, err := config.Load(context.Background(), writeConfig(t, `
metadata_format: xml
report:
  engine: docx
  date_style: us
  timezone: Mars/Olympus
capture:
  location: "200,0"
`))
		require.Error(t, err)
		for _, part := range []string{"xml", "docx", "us", "Mars/Olympus", "latitude"} {
			assert.Contains(t, err.Error(), part)
		}
	})
}

func TestLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Timezone = ""
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
