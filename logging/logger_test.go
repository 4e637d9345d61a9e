package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		out = append(out, entry)
	}
	return out
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, LevelInfo)

	l.Debug("hidden", nil)
	l.Info("shown", map[string]any{"k": "v"})
	l.Error("also shown", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "v", entries[0]["k"])
	assert.NotEmpty(t, entries[0]["time"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepper.log")
	l, closeFn, err := OpenFile(path, LevelInfo)
	require.NoError(t, err)

	l.Warn("written", nil)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	l, closeFn, err := OpenFile("", LevelDebug)
	require.NoError(t, err)
	l.Error("nowhere", nil)
	assert.NoError(t, closeFn())
}
