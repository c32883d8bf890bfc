// Package logger provides the small logging interface injected into the
// occlusion components. Components never reach for a package-level logger;
// each takes a Logger at construction time so callers control where degraded
// feature warnings go.
package logger

import "log"

// Logger is the minimal logging contract used throughout the occlusion
// subsystem. Implementations must be safe for concurrent use.
type Logger interface {
	// Printf formats and writes a single log line.
	//
	// Parameters:
	//   - format: printf-style format string
	//   - args: format arguments
	Printf(format string, args ...any)
}

// stdLogger writes through the standard library log package with a fixed
// subsystem prefix.
type stdLogger struct {
	prefix string
}

var _ Logger = &stdLogger{}

// New creates a Logger backed by the standard library log package.
//
// Parameters:
//   - prefix: tag prepended to every line, e.g. "[shadow]"
//
// Returns:
//   - Logger: the stdlib-backed logger
func New(prefix string) Logger {
	return &stdLogger{prefix: prefix}
}

func (l *stdLogger) Printf(format string, args ...any) {
	log.Printf(l.prefix+" "+format, args...)
}

// nopLogger discards everything. Used as the default in tests and when a
// caller explicitly wants a silent component.
type nopLogger struct{}

var _ Logger = nopLogger{}

// Nop returns a Logger that discards all output.
//
// Returns:
//   - Logger: the no-op logger
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Printf(string, ...any) {}
