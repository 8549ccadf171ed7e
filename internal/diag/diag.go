// Package diag provides leveled diagnostic logging for the emulator, thin
// enough to stay out of the hot path when tracing is disabled.
package diag

import (
	"io"
	"log"
	"os"
)

// Level selects which diagnostic calls actually reach the log.
type Level int

const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

// Logger wraps a standard log.Logger with leveled methods. The zero value
// is not usable; construct with New.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a Logger that writes to w at the given level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

// Default returns a Logger writing to stderr at LevelInfo, suitable for
// normal CLI operation.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// SetLevel changes the minimum level that will be emitted.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) logf(level Level, prefix, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	l.logger.Printf(prefix+format, args...)
}

// Warnf logs a warning-level message; always emitted.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN] ", format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO] ", format, args...)
}

// Debugf logs a debug-level message, gated behind -debug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Tracef logs a trace-level message. Intended for the CPU/PPU to call at
// instruction/frame boundaries; callers should check Enabled(LevelTrace)
// before formatting expensive arguments.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logf(LevelTrace, "[TRACE] ", format, args...)
}

// Enabled reports whether a message at the given level would be emitted,
// so callers can skip building expensive trace strings.
func (l *Logger) Enabled(level Level) bool {
	return l.level >= level
}
