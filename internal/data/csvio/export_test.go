package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	records := []model.Record{
		{ID: 1, URL: "https://youtu.be/x?t=10", TimeSeconds: 10.4},
		{ID: 2, URL: "https://www.youtube.com/watch?t=30&v=x", TimeSeconds: 30.9},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, records))

	expected := "SN,URL\n" +
		"1,https://youtu.be/x?t=10\n" +
		"2,https://www.youtube.com/watch?t=30&v=x\n"
	assert.Equal(t, expected, buf.String())
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	assert.ErrorIs(t, ExportFile(empty, []model.Record{}), ErrNothingToExport)
	_, err := os.Stat(empty)
	assert.True(t, os.IsNotExist(err), "no file should be created for an empty list")

	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, ExportFile(path, []model.Record{{URL: "https://youtu.be/x?t=1"}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SN,URL\n1,https://youtu.be/x?t=1\n", string(data))
}
