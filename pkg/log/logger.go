package log

import "context"

// Logger is the leveled, ctx-aware surface a *Node provides. Code
// that only emits records can depend on this instead of the node type.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(ctx context.Context, format string, a ...interface{})

	// Info logs a message at info level.
	Info(ctx context.Context, format string, a ...interface{})

	// Warn logs a message at warn level.
	Warn(ctx context.Context, format string, a ...interface{})

	// Error logs a message at error level.
	Error(ctx context.Context, format string, a ...interface{})
}

var _ Logger = (*Node)(nil)
