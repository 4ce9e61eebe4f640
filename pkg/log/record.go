package log

import "time"

// Record is a single log entry as handed to handlers. Formatters turn
// it into text; it carries no rendering policy of its own.
type Record struct {
	Time    time.Time
	Level   Level
	Node    string
	Message string
	TraceID string

	// Stack holds an optional stack trace, one frame per entry.
	Stack []string
}

// Formatter renders a record into the text a handler writes out.
type Formatter interface {
	Format(r *Record) string
}

// Handler receives records and writes them to a destination. Emit is
// called on the logging path; Close releases whatever resource the
// handler owns (file descriptor, socket, pool).
type Handler interface {
	Emit(r *Record) error
	Close() error
}
