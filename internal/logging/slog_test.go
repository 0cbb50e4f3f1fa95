package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/camlight/types"
)

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	t.Helper()
	var _ types.Logger = (*SlogLogger)(nil)
}

func TestNewSlog(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Debug(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	logger.Debug("debug message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=DEBUG")
}

func TestSlogLogger_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := NewSlog(slog.New(handler))

	logger.Info("info message", "camera", "Camera.001")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "camera=Camera.001")
	assert.Contains(t, output, "level=INFO")
}

func TestSlogLogger_Warn(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := NewSlog(slog.New(handler))

	logger.Warn("warning message", "state", "deferred")

	output := buf.String()
	assert.Contains(t, output, "warning message")
	assert.Contains(t, output, "state=deferred")
	assert.Contains(t, output, "level=WARN")
}

func TestSlogLogger_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := NewSlog(slog.New(handler))

	logger.Error("error message", "error", "restricted")

	output := buf.String()
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "error=restricted")
	assert.Contains(t, output, "level=ERROR")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := NewSlog(slog.New(handler))

	// Debug and Info should be filtered out
	logger.Debug("debug message")
	logger.Info("info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")

	// Warn and Error should appear
	logger.Warn("warn message")
	logger.Error("error message")

	output = buf.String()
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_MultipleKeyValues(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := NewSlog(slog.New(handler))

	logger.Info("visibility applied",
		"camera", "Camera",
		"shown", 2,
		"hidden", 3,
		"reason", "camera_changed")

	output := buf.String()
	assert.Contains(t, output, "visibility applied")
	assert.Contains(t, output, "camera=Camera")
	assert.Contains(t, output, "shown=2")
	assert.Contains(t, output, "hidden=3")
	assert.Contains(t, output, "reason=camera_changed")
}

func TestNewText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "lights", 4)

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "lights=4")
}
