// Package logger provides the built-in Logger implementations used by the
// engine when the caller does not supply one.
package logger

import "github.com/Skaland01/Kollektiv/types"

// NopLogger is a no-op logger that discards all log messages.
//
// It is the default for the engine and every strategy, so library users only
// see output after opting in with kollektiv.WithLogger.
//
// Example:
//
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithLogger(logger.NewNop()))
type NopLogger struct{}

var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (n *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (n *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (n *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (n *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message and does NOT call os.Exit.
func (n *NopLogger) Fatal(_ string, _ ...any) {}
