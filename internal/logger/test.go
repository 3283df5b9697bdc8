package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Skaland01/Kollektiv/types"
)

// TestLogger implements types.Logger on top of testing.TB so engine output
// is attached to the test that produced it.
type TestLogger struct {
	t testing.TB
}

var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a new test logger that writes through t.Logf.
//
// Example:
//
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithLogger(logger.NewTest(t)))
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

// Debug logs a debug-level message.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("DEBUG: %s%s", msg, FormatKeyValues(keysAndValues))
}

// Info logs an info-level message.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("INFO: %s%s", msg, FormatKeyValues(keysAndValues))
}

// Warn logs a warning-level message.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("WARN: %s%s", msg, FormatKeyValues(keysAndValues))
}

// Error logs an error-level message.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Logf("ERROR: %s%s", msg, FormatKeyValues(keysAndValues))
}

// Fatal logs a fatal-level message and fails the test immediately.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s%s", msg, FormatKeyValues(keysAndValues))
}

// FormatKeyValues renders key-value pairs as " k1=v1 k2=v2".
//
// A trailing key without value is rendered as "k=<missing>".
func FormatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&sb, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&sb, " %v=<missing>", keysAndValues[i])
		}
	}

	return sb.String()
}
