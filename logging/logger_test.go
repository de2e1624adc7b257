package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"loud", LogLevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStructuredLogger_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf}).
		WithComponent("server").
		WithSession("abc").
		WithContext("agent", "Eliza")

	logger.Debug("hidden")
	logger.Info("visible", "keyword", "MY")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"component":"server"`)
	assert.Contains(t, out, `"session_id":"abc"`)
	assert.Contains(t, out, `"agent":"Eliza"`)
	assert.Contains(t, out, `"keyword":"MY"`)
}

func TestStructuredLogger_LogTurn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "text", Output: &buf})

	logger.LogTurn("Eliza", "NO", "rule", time.Millisecond, nil)
	logger.LogTurn("Eliza", "", "default", time.Millisecond, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Turn completed")
	assert.Contains(t, out, "keyword=NO")
	assert.Contains(t, out, "Turn failed")
	assert.Contains(t, out, "error=boom")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	logger.Info("quiet")
	logger.Warn("loud", "keyword", "NO")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "keyword=NO")
}
