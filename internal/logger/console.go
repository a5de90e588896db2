// Package logger provides leveled console logging for nloc.
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

const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levels = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// ConsoleLogger writes leveled, timestamped messages to a writer.
// Color output is enabled for os.Stdout and os.Stderr TTYs.
// Safe for concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	timestamps  bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to w.
// If w is nil, messages are silently discarded. An empty or unknown
// level defaults to "info".
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       parseLevel(level),
		colorOutput: isTerminal(w),
		timestamps:  true,
	}
}

// WithoutTimestamps disables the [HH:MM:SS] prefix. Returns cl.
func (cl *ConsoleLogger) WithoutTimestamps() *ConsoleLogger {
	cl.timestamps = false
	return cl
}

func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		// Honors NO_COLOR and non-TTY output.
		return !color.NoColor
	}
	return false
}

func parseLevel(level string) int {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return levelInfo
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.logf(levelTrace, "TRACE", format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(levelError, "ERROR", format, args...)
}

func (cl *ConsoleLogger) logf(level int, label, format string, args ...any) {
	if cl == nil || cl.writer == nil || level < cl.level {
		return
	}
	message := fmt.Sprintf(format, args...)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	if cl.colorOutput {
		label = colorize(label)
	}

	var b strings.Builder
	if cl.timestamps {
		fmt.Fprintf(&b, "[%s] ", time.Now().Format("15:04:05"))
	}
	fmt.Fprintf(&b, "[%s] %s\n", label, message)
	_, _ = io.WriteString(cl.writer, b.String())
}

func colorize(label string) string {
	switch label {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(label)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(label)
	case "INFO":
		return color.New(color.FgBlue).Sprint(label)
	case "WARN":
		return color.New(color.FgYellow).Sprint(label)
	case "ERROR":
		return color.New(color.FgRed).Sprint(label)
	}
	return label
}
