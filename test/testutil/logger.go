package testutil

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/peopledao/types"
)

// LogEntry is one message captured by a RecordingLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// RecordingLogger captures log messages for assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Compile-time assertion that RecordingLogger implements types.Logger.
var _ types.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

// Debug records a debug message.
func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record("debug", msg, keysAndValues)
}

// Info records an info message.
func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record("info", msg, keysAndValues)
}

// Warn records a warning.
func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record("warn", msg, keysAndValues)
}

// Error records an error message.
func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record("error", msg, keysAndValues)
}

func (l *RecordingLogger) record(level, msg string, keysAndValues []any) {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

// Entries returns every captured message in order.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.entries)
}

// Messages returns the captured messages at level.
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}

	return out
}
