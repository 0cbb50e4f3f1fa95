package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Debug("debug", "camera", "Camera")
		logger.Info("info")
		logger.Warn("warn", "odd")
		logger.Error("error", "attempt", 2)
	})
}
