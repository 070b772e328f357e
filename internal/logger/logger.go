package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker reports whether debug and info output is enabled
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes component-tagged log lines. Debug and Info only appear in verbose mode.
type Logger struct {
	component string
	verbose   VerboseChecker
	out       *output
}

// output is shared between loggers derived with WithComponent so that
// concurrent workers never interleave partial lines.
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

const timeLayout = "15:04:05.000"

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component: component,
		verbose:   verboseChecker,
		out:       &output{w: os.Stderr},
	}
}

// NewWithCallback creates a logger whose verbosity follows a callback
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, callbackChecker(verboseCheck))
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := New("", nil)
	l.SetOutput(io.Discard)
	return l
}

// SetOutput redirects the logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	l.out.w = w
	l.out.mu.Unlock()
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{component: component, verbose: l.verbose, out: l.out}
}

type callbackChecker func() bool

func (c callbackChecker) IsVerbose() bool {
	return c != nil && c()
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose.IsVerbose()
}

// Debug logs debug messages (only when verbose)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.write("DEBUG", msg, nil, args)
	}
}

// Info logs informational messages (only when verbose)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.write("INFO", msg, nil, args)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write("WARN", msg, nil, args)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write("ERROR", msg, nil, args)
}

func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.write("DEBUG", msg, fields, args)
	}
}

func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.write("INFO", msg, fields, args)
	}
}

func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("WARN", msg, fields, args)
}

func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("ERROR", msg, fields, args)
}

// write renders "[time] LEVEL [component] message [k=v ...]" as one line
func (l *Logger) write(level, msg string, fields []Field, args []interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] ", time.Now().Format(timeLayout), level, component)
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}
	if len(fields) > 0 {
		b.WriteString(" [")
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", field.Key, field.Value)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// nowhere left to report a failed log write
	_, _ = io.WriteString(l.out.w, b.String())
}

// F builds an arbitrary field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func File(path string) Field {
	return Field{Key: "file", Value: path}
}

func Kind(kind fmt.Stringer) Field {
	return Field{Key: "kind", Value: kind}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
