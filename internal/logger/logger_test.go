package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/config"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = "json"

	log := NewWithWriter(cfg, &buf)
	log.With("collector", "cpu").Info("collected", "metrics", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "collected", entry["msg"])
	assert.Equal(t, "cpu", entry["collector"])
	assert.EqualValues(t, 5, entry["metrics"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "warn"

	log := NewWithWriter(cfg, &buf)
	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "path", "/proc/stat")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "path=/proc/stat")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped", "error", "boom")
	log.With("k", "v").Debug("dropped")
}
