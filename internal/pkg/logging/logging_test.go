package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ReturnsSlogAdapter(t *testing.T) {
	for _, cfg := range []Config{{}, {Format: FormatJSON}, {Format: FormatText}, {Output: "syslog"}} {
		logger := NewLogger(cfg)
		_, ok := logger.(*SlogAdapter)
		assert.True(t, ok, "NewLogger(%+v) должен возвращать *SlogAdapter", cfg)
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatText, Level: LevelWarn}, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatJSON, Level: LevelDebug}, &buf)

	logger.With("trace_id", "abc").Debug("Запрос к Loupe API", "endpoint", "auth/token")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "Запрос к Loupe API", entry["msg"])
	assert.Equal(t, "abc", entry["trace_id"])
	assert.Equal(t, "auth/token", entry["endpoint"])
}

func TestNewLoggerWithWriter_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatJSON}, &buf)

	logger.Info("credentials", "user", "admin", "Password", "hunter2", "token", "tok")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin", entry["user"])
	assert.Equal(t, redactedValue, entry["Password"])
	assert.Equal(t, redactedValue, entry["token"])
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "loupe-ci.log")
	cfg := DefaultConfig()
	cfg.Output = OutputFile
	cfg.FilePath = path
	cfg.Format = FormatJSON

	logger := NewLogger(cfg)
	logger.Info("запись в файл", "version", "1.0.0")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "запись в файл")
	assert.Contains(t, string(data), `"version":"1.0.0"`)
}

func TestNewFileWriter_EmptyPathFallsBackToStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, newFileWriter(Config{Output: OutputFile}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Equal(t, "/var/log/loupe-ci.log", cfg.FilePath)
	assert.True(t, cfg.Compress)
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("d")
		logger.Info("i", "k", "v")
		logger.Warn("w")
		logger.Error("e")
	})
	assert.Same(t, logger, logger.With("k", "v"))
}

func TestNewSlogAdapter_Nil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotPanics(t, func() { adapter.Info("default logger") })
}
