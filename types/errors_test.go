package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("errors.Is works correctly", func(t *testing.T) {
		require.True(t, errors.Is(ErrInvalidEnvironment, ErrInvalidEnvironment))
		require.False(t, errors.Is(ErrInvalidEnvironment, ErrObjectExists))

		wrapped := fmt.Errorf("scene unavailable: %w", ErrInvalidEnvironment)
		require.True(t, errors.Is(wrapped, ErrInvalidEnvironment))
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := []error{
			ErrInvalidConfig,
			ErrHostRequired,
			ErrCameraRequired,
			ErrLightNotFound,
			ErrRetriesExhausted,
			ErrHandlerPanic,
			ErrInvalidEnvironment,
			ErrObjectNotFound,
			ErrObjectExists,
		}

		for i, err1 := range allErrors {
			for j, err2 := range allErrors {
				if i != j {
					require.False(t, errors.Is(err1, err2),
						"errors should be distinct: %v vs %v", err1, err2)
				}
			}
		}
	})
}

func TestHidden(t *testing.T) {
	require.Equal(t, Visibility{HiddenInViewport: true, HiddenInRender: true}, Hidden(true))
	require.Equal(t, Visibility{}, Hidden(false))
}

func TestAssignmentModeString(t *testing.T) {
	require.Equal(t, "SCENE", ModeScene.String())
	require.Equal(t, "CAMERA", ModeCamera.String())
	require.Equal(t, "Unknown", AssignmentMode(42).String())
}

func TestSceneSubscriberFunc(t *testing.T) {
	var got SceneEvent
	var sub SceneSubscriber = SceneSubscriberFunc(func(ev SceneEvent) { got = ev })

	sub.OnSceneChanged(SceneEvent{Source: "test", Sequence: 7})

	require.Equal(t, "test", got.Source)
	require.Equal(t, uint64(7), got.Sequence)
}
