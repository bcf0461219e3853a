package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecords = []model.Record{
	{ID: 1, URL: "https://youtu.be/x?t=10", TimeSeconds: 10.25, DisplayTime: "00:00:10:250"},
	{ID: 2, URL: "https://youtu.be/x?t=3600", TimeSeconds: 3600, DisplayTime: "01:00:00:000"},
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", FormatTable, FormatJSON, FormatCSV} {
		f, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml")
	assert.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, sampleRecords))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6) // top, header, middle, 2 rows, bottom
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "Time")
	assert.Contains(t, lines[3], "│ 1 │ 00:00:10:250 │ https://youtu.be/x?t=10   │")
	assert.Contains(t, lines[4], "01:00:00:000")
	assert.True(t, strings.HasPrefix(lines[5], "└"))
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, nil))
	assert.Equal(t, "No timestamps recorded yet.\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleRecords))

	var decoded []model.Record
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords, decoded)
	assert.Contains(t, buf.String(), `"displayTime"`)

	buf.Reset()
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, sampleRecords))
	assert.Equal(t, "SN,URL\n1,https://youtu.be/x?t=10\n2,https://youtu.be/x?t=3600\n", buf.String())

	buf.Reset()
	require.NoError(t, NewCSVFormatter().Format(&buf, nil))
	assert.Empty(t, buf.String())
}
