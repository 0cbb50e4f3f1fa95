package hooks

import (
	"fmt"

	"github.com/arloliu/camlight/types"
)

// Invoke runs fn, converting a panic into an error wrapping types.ErrHandlerPanic.
//
// The hook name is used in the log entry when fn fails.
//
// Parameters:
//   - logger: Logger for hook failures
//   - name: Hook name for log context
//   - fn: Hook invocation
//
// Returns:
//   - error: The hook's error, a wrapped panic, or nil
func Invoke(logger types.Logger, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: hook %s: %v", types.ErrHandlerPanic, name, r)
		}
		if err != nil {
			logger.Error("hook failed", "hook", name, "error", err)
		}
	}()

	return fn()
}
