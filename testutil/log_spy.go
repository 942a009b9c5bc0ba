package testutil

import (
	"context"
	"sync"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// LogSpy records log calls for assertions. It satisfies both the basic and
// the contextual logger contracts.
type LogSpy struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogSpy creates an empty log spy.
func NewLogSpy() *LogSpy {
	return &LogSpy{}
}

func (l *LogSpy) record(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Debug records a debug-level entry.
func (l *LogSpy) Debug(msg string, args ...any) { l.record("DEBUG", msg, args...) }

// Info records an info-level entry.
func (l *LogSpy) Info(msg string, args ...any) { l.record("INFO", msg, args...) }

// Warn records a warn-level entry.
func (l *LogSpy) Warn(msg string, args ...any) { l.record("WARN", msg, args...) }

// Error records an error-level entry.
func (l *LogSpy) Error(msg string, args ...any) { l.record("ERROR", msg, args...) }

// DebugContext records a debug-level entry.
func (l *LogSpy) DebugContext(_ context.Context, msg string, args ...any) {
	l.record("DEBUG", msg, args...)
}

// InfoContext records an info-level entry.
func (l *LogSpy) InfoContext(_ context.Context, msg string, args ...any) {
	l.record("INFO", msg, args...)
}

// WarnContext records a warn-level entry.
func (l *LogSpy) WarnContext(_ context.Context, msg string, args ...any) {
	l.record("WARN", msg, args...)
}

// ErrorContext records an error-level entry.
func (l *LogSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	l.record("ERROR", msg, args...)
}

// Entries returns a copy of all recorded entries.
func (l *LogSpy) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)

	return entries
}

// HasEntryWithMsg reports whether any entry was recorded with the given message.
func (l *LogSpy) HasEntryWithMsg(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.Msg == msg {
			return true
		}
	}

	return false
}
