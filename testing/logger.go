package testing

import (
	"testing"

	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/types"
)

// NewTestLogger creates a logger that writes to the test log.
//
// Lines are formatted as "LEVEL: msg key=value ...", so hosts testing their
// integration see manager decisions next to their own assertions.
func NewTestLogger(t testing.TB) types.Logger {
	return logging.NewTest(t)
}
