// Package logging provides the structured JSON logger used across stepper.
// The TUI owns the terminal, so logs go to a file or nowhere.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger defines the structured logging interface.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
}

// Level is a minimum severity for emitted entries.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// JSONLogger writes structured JSON log entries to an io.Writer.
type JSONLogger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewJSONLogger creates a JSONLogger writing entries at or above level to w.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{w: w, level: level}
}

// Discard returns a logger that drops every entry.
func Discard() *JSONLogger {
	return NewJSONLogger(io.Discard, LevelError)
}

// OpenFile opens (appending) the log file at path and returns a logger
// writing to it together with a close function. An empty path yields a
// discarding logger.
func OpenFile(path string, level Level) (*JSONLogger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return NewJSONLogger(f, level), f.Close, nil
}

func (l *JSONLogger) Info(msg string, fields map[string]any)  { l.log(LevelInfo, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields map[string]any)  { l.log(LevelWarn, msg, fields) }
func (l *JSONLogger) Error(msg string, fields map[string]any) { l.log(LevelError, msg, fields) }
func (l *JSONLogger) Debug(msg string, fields map[string]any) { l.log(LevelDebug, msg, fields) }

func (l *JSONLogger) log(level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level.String()
	entry["msg"] = msg

	l.mu.Lock()
	defer l.mu.Unlock()
	data, _ := json.Marshal(entry)
	data = append(data, '\n')
	l.w.Write(data) //nolint:errcheck
}
