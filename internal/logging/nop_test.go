package logging

import (
	"testing"

	"github.com/arloliu/camlight/types"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	var _ types.Logger = logger

	require.NotPanics(t, func() {
		logger.Debug("test message", "key", "value")
		logger.Info("test message", "key", "value")
		logger.Warn("test message", "key", "value")
		logger.Error("test message", "key", "value")
		logger.Fatal("test message", "key", "value") // Should NOT exit
	})
}

func TestNopLogger_NoSideEffects(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Debug("")
		logger.Info("", nil)
		logger.Warn("message")
		logger.Error("message", "single")
	})
}

func TestTestLogger_RecordsLines(t *testing.T) {
	logger := NewTest(t)

	logger.Info("camera changed", "from", "Camera", "to", "Camera.001")
	logger.Warn("odd pairs", "dangling")

	lines := logger.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, "INFO: camera changed from=Camera to=Camera.001", lines[0])
	require.Equal(t, "WARN: odd pairs dangling=<missing>", lines[1])
	require.True(t, logger.Contains("to=Camera.001"))
	require.False(t, logger.Contains("Camera.002"))
}

func BenchmarkNopLogger(b *testing.B) {
	logger := NewNop()

	for b.Loop() {
		logger.Debug("benchmark message", "key1", "value1", "key2", 42)
	}
}
