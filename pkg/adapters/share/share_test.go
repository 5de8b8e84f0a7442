package share_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/adapters/share"
	"github.com/aretw0/inspekt/pkg/core"
)

func TestNone(t *testing.T) {
	assert.False(t, share.None{}.IsAvailable(context.Background()))
	assert.ErrorIs(t, share.None{}.Share(context.Background(), "x"), core.ErrSharingUnavailable)
}

func TestParseCommand(t *testing.T) {
	assert.Nil(t, share.ParseCommand("   "))
	c := share.ParseCommand("xdg-open --verbose")
	require.NotNil(t, c)
	assert.Equal(t, "xdg-open", c.Name)
	assert.Equal(t, []string{"--verbose"}, c.Args)
}

func TestCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Program", func(t *testing.T) {
		c := &share.Command{Name: "inspekt-no-such-share-tool"}
		assert.False(t, c.IsAvailable(ctx))
		assert.ErrorIs(t, c.Share(ctx, "report.pdf"), core.ErrSharingUnavailable)
	})

	t.Run("Runs Program", func(t *testing.T) {
		if _, err := exec.LookPath("true"); err != nil {
			t.Skip("true not available")
		}
		c := &share.Command{Name: "true"}
		assert.True(t, c.IsAvailable(ctx))
		assert.NoError(t, c.Share(ctx, "report.pdf"))
	})

	t.Run("Program Fails", func(t *testing.T) {
		if _, err := exec.LookPath("false"); err != nil {
			t.Skip("false not available")
		}
		assert.Error(t, (&share.Command{Name: "false"}).Share(ctx, "report.pdf"))
	})
}
