// Package hooks provides default hook implementations and safe hook dispatch.
package hooks

import (
	"context"

	"github.com/arloliu/camlight/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.State, types.State) error = (*NopHooks)(nil).OnStateChanged
	_ func(context.Context, string, string) error           = (*NopHooks)(nil).OnActiveCameraChanged
	_ func(context.Context) error                           = (*NopHooks)(nil).OnAssignmentsChanged
	_ func(context.Context, error) error                    = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnStateChanged:        h.OnStateChanged,
		OnActiveCameraChanged: h.OnActiveCameraChanged,
		OnAssignmentsChanged:  h.OnAssignmentsChanged,
		OnError:               h.OnError,
	}
}

// Fill returns h with every nil callback replaced by its no-op counterpart.
//
// Parameters:
//   - h: User supplied hooks, may be nil
//
// Returns:
//   - types.Hooks: Hooks safe to call without nil checks
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnStateChanged != nil {
		out.OnStateChanged = h.OnStateChanged
	}
	if h.OnActiveCameraChanged != nil {
		out.OnActiveCameraChanged = h.OnActiveCameraChanged
	}
	if h.OnAssignmentsChanged != nil {
		out.OnAssignmentsChanged = h.OnAssignmentsChanged
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnStateChanged is a no-op implementation.
func (h *NopHooks) OnStateChanged(ctx context.Context, from, to types.State) error {
	return nil
}

// OnActiveCameraChanged is a no-op implementation.
func (h *NopHooks) OnActiveCameraChanged(ctx context.Context, from, to string) error {
	return nil
}

// OnAssignmentsChanged is a no-op implementation.
func (h *NopHooks) OnAssignmentsChanged(ctx context.Context) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, err error) error {
	return nil
}
