package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer_Runs(t *testing.T) {
	var ran atomic.Bool

	NewTimer().Schedule(10*time.Millisecond, func() { ran.Store(true) })

	require.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
}

func TestTimer_Cancel(t *testing.T) {
	var ran atomic.Bool

	cancel := NewTimer().Schedule(50*time.Millisecond, func() { ran.Store(true) })
	cancel()
	cancel()

	time.Sleep(100 * time.Millisecond)
	require.False(t, ran.Load())
}
