package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, "warn", "text")
	log.Info("hidden")
	log.Warn("shown", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "rows=3")

	buf.Reset()
	log.SetLevel("debug")
	log.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, "info", "json").With("component", "loader")
	log.Info("loaded")

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"component":"loader"`)
}
