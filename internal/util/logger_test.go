package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format LogFormat) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := &Logger{
		level:  ParseLogLevel(level),
		fields: map[string]interface{}{},
	}
	logger.AddOutput(NewConsoleOutput(buf, format))
	return logger, buf
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("nonsense"))
}

func TestLoggerTextOutput(t *testing.T) {
	logger, buf := newBufferLogger("info", FormatText)

	logger.Debug("hidden")
	logger.Named("overlay").Info("Record added.", F("id", 7), F("at", "00:00:10:000"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO][overlay] Record added. at=00:00:10:000 id=7")
}

func TestLoggerJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatJSON)
	logger.With(F("count", 3)).Debug("Records imported.")

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "Records imported.", entry.Message)
	assert.EqualValues(t, 3, entry.Fields["count"])
}

func TestNewLoggerRequiresDestination(t *testing.T) {
	_, err := NewLogger(LoggerOptions{Level: "info"})
	assert.Error(t, err)
}

func TestGlobalLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, InitLogger(LoggerOptions{Level: "debug", File: path}))
	defer CloseLogger()

	Named("popup").Info("Recording enabled.")
	LogDebugf("loaded %d records", 2)
	require.NoError(t, CloseLogger())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO][popup] Recording enabled.")
	assert.Contains(t, string(data), "[DEBUG] loaded 2 records")
}

func TestNamedBeforeInitIsSilent(t *testing.T) {
	require.NoError(t, CloseLogger())
	assert.NotPanics(t, func() {
		Named("background").Info("nothing to write to")
	})
}
