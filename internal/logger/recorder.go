package logger

import (
	"sync"

	"github.com/Skaland01/Kollektiv/types"
)

// Entry is a single captured log call.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Value returns the value logged for key, or nil.
func (e Entry) Value(key string) any {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if k, ok := e.KeysAndValues[i].(string); ok && k == key {
			return e.KeysAndValues[i+1]
		}
	}

	return nil
}

// Recorder captures log calls in memory so tests can assert on them.
//
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty recording logger.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug-level message.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.record("debug", msg, keysAndValues) }

// Info records an info-level message.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.record("info", msg, keysAndValues) }

// Warn records a warning-level message.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.record("warn", msg, keysAndValues) }

// Error records an error-level message.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.record("error", msg, keysAndValues) }

// Fatal records a fatal-level message. It does not exit.
func (r *Recorder) Fatal(msg string, keysAndValues ...any) { r.record("fatal", msg, keysAndValues) }

// Entries returns a copy of all captured entries in call order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Find returns the captured entries with the given level and message.
func (r *Recorder) Find(level, msg string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			out = append(out, e)
		}
	}

	return out
}

func (r *Recorder) record(level, msg string, keysAndValues []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: keysAndValues})
}
