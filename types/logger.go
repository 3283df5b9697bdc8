package types

// Logger is the structured logger used by the engine, strategies and stores.
//
// Methods take a message followed by alternating key-value pairs, the
// calling convention of zap.SugaredLogger's *w methods and log/slog.
// internal/logging adapts both.
type Logger interface {
	// Debug logs per-run details such as rebalance moves.
	Debug(msg string, keysAndValues ...any)

	// Info logs completed mutations.
	Info(msg string, keysAndValues ...any)

	// Warn logs recoverable problems, e.g. a rejected rotation.
	Warn(msg string, keysAndValues ...any)

	// Error logs failed hooks and store writes.
	Error(msg string, keysAndValues ...any)

	// Fatal logs and exits the process. The engine never calls it.
	Fatal(msg string, keysAndValues ...any)
}
