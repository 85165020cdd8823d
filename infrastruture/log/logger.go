// Package log provides the leveled, color-prefixed logger used across
// the application. Every component gets its own prefix and color so
// interleaved output stays readable.
package log

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/config"
)

// Logger writes timestamped, leveled lines to a single writer.
type Logger struct {
	prefix string
	color  string
	out    io.Writer
	mu     sync.Mutex
}

// New creates a Logger that tags every line with the given prefix,
// rendered in the given ANSI color.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("log: prefix must not be empty")
	}
	if out == nil {
		return nil, errors.New("log: writer must not be nil")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    out,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", config.LogInfoColor, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", config.LogWarningColor, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", config.LogErrorColor, msg)
}

func (l *Logger) write(level, levelColor, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s[%s]%s %s[%s]%s %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		l.color, l.prefix, config.LogColorReset,
		levelColor, level, config.LogColorReset,
		msg,
	)
}
