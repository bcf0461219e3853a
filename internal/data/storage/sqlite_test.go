package storage

import (
	"context"
	"testing"
	"time"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, Options{Backend: BackendSQLite, DataDir: dir, PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = EnsureDefaults(ctx, store)
	require.NoError(t, err)

	records := []model.Record{
		{ID: 1, URL: "https://youtu.be/x?t=1", TimeSeconds: 1, DisplayTime: "00:00:01:000"},
		{ID: 2, URL: "https://youtu.be/x?t=2", TimeSeconds: 2, DisplayTime: "00:00:02:000"},
	}
	require.NoError(t, store.Set(ctx, NewPatch().Records(records)))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, Options{Backend: BackendSQLite, DataDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.True(t, snap.HasEnabled)
	assert.False(t, snap.Enabled)
	assert.Equal(t, records, snap.Records)
}

func TestSQLiteBackendSeesOtherProcessWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := Options{Backend: BackendSQLite, DataDir: dir, PollInterval: 20 * time.Millisecond}

	writer, err := Open(ctx, opts)
	require.NoError(t, err)
	defer writer.Close()

	reader, err := Open(ctx, opts)
	require.NoError(t, err)
	defer reader.Close()

	events, cancel := reader.Subscribe()
	defer cancel()

	require.NoError(t, writer.Set(ctx, NewPatch().Enabled(true)))

	ev := waitEvent(t, events)
	require.NotNil(t, ev.Enabled)
	assert.True(t, ev.Enabled.NewValue)
	assert.True(t, ev.External)
}
