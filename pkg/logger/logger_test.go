package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		" DEBUG ":  slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"info":     slog.LevelInfo,
		"":         slog.LevelInfo,
		"verbose!": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}

func TestNewStructuredLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	l := NewStructuredLoggerTo(&buf, "sitenav", "v1.2.3", "warn")

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept", "location", "/about.html")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "sitenav", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "/about.html", rec["location"])
	assert.NotContains(t, rec, "source")
}

func TestDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLoggerTo(&buf, "sitenav", "dev", "debug").Debug("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "source")
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvVarLogLevel, "debug")

	assert.Equal(t, "debug", ResolveLevel())
	assert.Equal(t, "debug", ResolveLevel("", " "))
	assert.Equal(t, "warn", ResolveLevel("", "warn"))
	assert.Equal(t, "error", ResolveLevel("error", "warn"))

	t.Setenv(EnvVarLogLevel, "")
	assert.Equal(t, "", ResolveLevel(""))
}
