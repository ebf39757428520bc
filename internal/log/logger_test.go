package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", "json", &buf)

	l.Debugw("hidden")
	l.Infow("route activated", "path", "/api/v1/items")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "route activated", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/api/v1/items", entry["path"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("loud", "console", &buf)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("shown")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpen_WithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := Open("warn", "json", false, &buf)
	require.NoError(t, err)
	defer closeFn()

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
