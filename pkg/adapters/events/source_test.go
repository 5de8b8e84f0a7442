package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inspekt/pkg/adapters/events"
	"github.com/aretw0/inspekt/pkg/core"
)

func TestSourceForwardsCommits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 2)
	in <- core.Event{Type: "OTHER", Name: "ignored"}
	in <- core.Event{Type: core.EventCommitted, Token: 42, Name: "metadata_42.json"}
	close(in)

	src := events.NewSource(in)
	require.NoError(t, src.Start(ctx))

	select {
	case e, ok := <-src.Events():
		require.True(t, ok)
		assert.Equal(t, "COMMITTED metadata_42.json", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output closes with the input")
	case <-time.After(2 * time.Second):
		t.Fatal("output not closed")
	}
}
