// Package logger provides the leveled console logger used by wcd.
//
// Messages are written as "[HH:MM:SS] [LEVEL] message" lines. The level is
// colored when the writer is a terminal and NO_COLOR is unset.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log levels, least to most severe.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelOrder = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

// ConsoleLogger writes leveled messages to an io.Writer. It is safe for
// concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	level       string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger writing to w. A nil writer
// discards every message. Unknown or empty levels fall back to "info".
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       NormalizeLevel(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, LevelError)
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// NormalizeLevel lowercases level and maps unknown values to "info".
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "warning" {
		normalized = LevelWarn
	}
	if _, ok := levelOrder[normalized]; ok {
		return normalized
	}
	return LevelInfo
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	_, ok := levelOrder[normalized]
	return ok || normalized == "warning"
}

// Level returns the configured minimum level.
func (cl *ConsoleLogger) Level() string {
	return cl.level
}

// Enabled reports whether messages at level are written.
func (cl *ConsoleLogger) Enabled(level string) bool {
	return cl.writer != nil && levelOrder[NormalizeLevel(level)] >= levelOrder[cl.level]
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.logf(LevelTrace, format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(LevelDebug, format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(LevelWarn, format, args...)
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(LevelError, format, args...)
}

// SkippedPath reports a path left out of a traversal. Its signature matches
// wpath.WarnFunc.
func (cl *ConsoleLogger) SkippedPath(path string, reason error) {
	cl.Warnf("skipping path '%s': %v", path, reason)
}

func (cl *ConsoleLogger) logf(level, format string, args ...any) {
	if !cl.Enabled(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	label := strings.ToUpper(level)
	if cl.colorOutput {
		label = levelColor(level).Sprint(label)
	}

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, label, fmt.Sprintf(format, args...))
}

func levelColor(level string) *color.Color {
	switch level {
	case LevelTrace:
		return color.New(color.FgHiBlack)
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelInfo:
		return color.New(color.FgBlue)
	case LevelWarn:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
