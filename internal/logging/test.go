package logging

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/camlight/types"
)

// TestLogger implements types.Logger using testing.T for output and keeps
// every formatted line so tests can assert on what was logged.
type TestLogger struct {
	t     testing.TB
	mu    sync.Mutex
	lines []string
}

// Compile-time assertion that TestLogger implements Logger.
var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a new test logger that writes to t.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    logger := NewTest(t)
//	    logger.Info("enable attempted", "state", "Deferred")
//	}
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.log("DEBUG", msg, keysAndValues)
}

// Info logs an info-level message with optional key-value pairs.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.log("INFO", msg, keysAndValues)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.log("WARN", msg, keysAndValues)
}

// Error logs an error-level message with optional key-value pairs.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.log("ERROR", msg, keysAndValues)
}

// Fatal logs a fatal-level message and fails the test.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s %s", msg, formatKeyValues(keysAndValues))
}

// Lines returns a copy of all formatted lines logged so far.
func (l *TestLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.lines))
	copy(out, l.lines)

	return out
}

// Contains reports whether any logged line contains substr.
func (l *TestLogger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

func (l *TestLogger) log(level, msg string, keysAndValues []any) {
	line := fmt.Sprintf("%s: %s %s", level, msg, formatKeyValues(keysAndValues))

	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()

	l.t.Log(line)
}

// formatKeyValues formats key-value pairs for logging.
func formatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&sb, "%v=%v ", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&sb, "%v=<missing> ", keysAndValues[i])
		}
	}

	return strings.TrimSpace(sb.String())
}
