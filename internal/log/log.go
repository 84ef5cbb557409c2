// Package log provides structured logging for vigil.
// Entries carry a level, a category, a timestamp and key=value fields.
// A Logger is a plain value handed to the components that log, so nothing
// writes to a file unless the caller asked for it (--debug or VIGIL_DEBUG).
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatBuffer  Category = "buffer"  // Buffer load/save
	CatEditor  Category = "editor"  // Controller actions
	CatInput   Category = "input"   // Mode and pending command transitions
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatTerm    Category = "term"    // Terminal backends
)

// Logger writes structured entries to a writer.
// The zero value and a nil *Logger both discard everything.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

// New opens (or creates) the log file at path in append mode.
// The caller owns the returned logger and must Close it.
func New(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := NewWriter(f)
	l.file = f
	return l, nil
}

// NewWriter returns an enabled logger writing to w.
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
	}
}

// Nop returns a logger that discards all entries.
func Nop() *Logger {
	return &Logger{}
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// SetEnabled toggles logging on/off.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func (l *Logger) SetMinLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Debug logs at debug level.
func (l *Logger) Debug(cat Category, msg string, fields ...any) {
	l.log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func (l *Logger) Info(cat Category, msg string, fields ...any) {
	l.log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func (l *Logger) Warn(cat Category, msg string, fields ...any) {
	l.log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func (l *Logger) Error(cat Category, msg string, fields ...any) {
	l.log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func (l *Logger) ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	l.log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.writer == nil || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [ERROR] [buffer] message key=value key2=value2
	timestamp := l.now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	_, _ = l.writer.Write([]byte(entry))
}
