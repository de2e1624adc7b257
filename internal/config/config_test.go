package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/eliza/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eliza.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Name)
	assert.Equal(t, "eliza", cfg.Script)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 1000, cfg.Server.MaxSessions)
	assert.Equal(t, 20, cfg.Engine.MaxRedirects)
	assert.Empty(t, cfg.Model.Provider)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
name: Doc
script: blank
log:
  level: debug
  format: json
server:
  addr: ":9000"
  max_sessions: 5
engine:
  max_redirects: 4
model:
  provider: openai
  name: gpt-4o-mini
`)
	t.Setenv("ELIZA_SERVER_MAX_SESSIONS", "7")
	t.Setenv("ELIZA_MODEL_API_KEY", "secret")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	flags.String("name", "", "")
	require.NoError(t, flags.Parse([]string{"--addr", "127.0.0.1:1234"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "Doc", cfg.Name, "unchanged flag keeps the file value")
	assert.Equal(t, "blank", cfg.Script)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, "127.0.0.1:1234", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Server.MaxSessions)
	assert.Equal(t, 4, cfg.Engine.MaxRedirects)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, "secret", cfg.Model.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
		{"bad provider", "model:\n  provider: markov\n", "model.provider"},
		{"negative redirects", "engine:\n  max_redirects: -1\n", "engine.max_redirects"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLogConfig_NewLogger(t *testing.T) {
	l, err := LogConfig{Format: "text"}.NewLogger(0)
	require.NoError(t, err)
	assert.IsType(t, logging.NoOpLogger{}, l)

	l, err = LogConfig{Format: "json"}.NewLogger(1)
	require.NoError(t, err)
	assert.IsType(t, &logging.StructuredLogger{}, l)

	l, err = LogConfig{Level: "warn", Format: "console"}.NewLogger(0)
	require.NoError(t, err)
	assert.IsType(t, &logging.ZapAdapter{}, l)

	_, err = LogConfig{Level: "loud"}.NewLogger(0)
	assert.Error(t, err)
}
