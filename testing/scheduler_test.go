package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualScheduler_Advance(t *testing.T) {
	s := NewManualScheduler()
	var order []string

	s.Schedule(200*time.Millisecond, func() { order = append(order, "late") })
	s.Schedule(100*time.Millisecond, func() { order = append(order, "early") })
	require.Equal(t, 2, s.Pending())

	require.Zero(t, s.Advance(50*time.Millisecond))
	require.Equal(t, 1, s.Advance(50*time.Millisecond))
	require.Equal(t, []string{"early"}, order)

	require.Equal(t, 1, s.Advance(time.Second))
	require.Equal(t, []string{"early", "late"}, order)
	require.Zero(t, s.Pending())
}

func TestManualScheduler_Cancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	cancel := s.Schedule(time.Millisecond, func() { ran = true })
	cancel()
	cancel()

	require.Zero(t, s.Advance(time.Second))
	require.False(t, ran)
}

func TestManualScheduler_Rescheduling(t *testing.T) {
	s := NewManualScheduler()
	runs := 0

	var task func()
	task = func() {
		runs++
		if runs < 3 {
			s.Schedule(100*time.Millisecond, task)
		}
	}
	s.Schedule(100*time.Millisecond, task)

	require.Equal(t, 1, s.Advance(100*time.Millisecond))
	require.Equal(t, 2, s.Advance(250*time.Millisecond))
	require.Equal(t, 3, runs)
	require.Equal(t, []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		100 * time.Millisecond,
	}, s.Delays())
}

func TestManualScheduler_RunNext(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	require.False(t, s.RunNext())

	s.Schedule(time.Hour, func() { ran = true })
	require.True(t, s.RunNext())
	require.True(t, ran)
	require.False(t, s.RunNext())
}
