package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind the keysAndValues-style interface the
// client packages expect.
type Logger struct {
	zl zerolog.Logger
}

// New creates a new structured logger writing to stderr
func New() *Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return &Logger{zl: zerolog.New(output).With().Timestamp().Logger()}
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.emit(l.zl.Debug(), msg, keysAndValues)
}

// Info logs an informational message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.emit(l.zl.Info(), msg, keysAndValues)
}

// Warn logs a warning
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(l.zl.Warn(), msg, keysAndValues)
}

// Error logs an error
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.emit(l.zl.Error(), msg, keysAndValues)
}

// emit attaches alternating key/value pairs to the event. A trailing key
// without a value is logged under "missing".
func (l *Logger) emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "arg"
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		ev = ev.Interface("missing", keysAndValues[len(keysAndValues)-1])
	}
	ev.Msg(msg)
}
