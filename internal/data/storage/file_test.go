package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, Options{Backend: BackendFile, DataDir: dir})
	require.NoError(t, err)

	records := []model.Record{{ID: 3, URL: "https://youtu.be/x?t=9", TimeSeconds: 9, DisplayTime: "00:00:09:000"}}
	require.NoError(t, store.Set(ctx, NewPatch().Enabled(true).Records(records)))
	require.NoError(t, store.Set(ctx, NewPatch().Enabled(false)))
	require.NoError(t, store.Close())

	data, err := os.ReadFile(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), model.KeyRecords)

	reopened, err := Open(ctx, Options{DataDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Enabled)
	assert.True(t, snap.HasEnabled)
	assert.Equal(t, records, snap.Records)
}

func TestFileBackendMissingAndEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	values, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	values, err = backend.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestFileBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	_, err = backend.Load(context.Background())
	assert.Error(t, err)
}

func TestFileBackendSeesOtherProcessWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writer, err := Open(ctx, Options{DataDir: dir})
	require.NoError(t, err)
	defer writer.Close()
	_, err = EnsureDefaults(ctx, writer)
	require.NoError(t, err)

	reader, err := Open(ctx, Options{DataDir: dir})
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

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "redis", DataDir: t.TempDir()})
	assert.Error(t, err)
}
