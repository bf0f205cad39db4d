package playercam

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes debug and info lines to one writer and warnings and
// errors to another. Debug output is dropped unless enabled.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewWriterLogger is NewDefaultLogger with explicit sinks.
func NewWriterLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

// emit writes "LEVEL prefix: message", or "LEVEL message" without a prefix.
func (l *DefaultLogger) emit(dst *log.Logger, level, format string, args []any) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, args...)
	dst.Print(b.String())
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.emit(l.out, "DEBUG", format, args)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.emit(l.out, "INFO", format, args)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.emit(l.err, "WARN", format, args)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.emit(l.err, "ERROR", format, args)
}

// LoggingModule installs Logger as a host resource, or a DefaultLogger built
// from Prefix and Debug when Logger is nil.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Logger *DefaultLogger
}

func (m LoggingModule) Install(host *Host) {
	logger := m.Logger
	if logger == nil {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	host.AddResources(logger)
}

// discard drops everything. It is what a camera logs to before it is attached
// and what Host.Logger hands out when no logger was installed.
type discard struct{}

var discardLogger Logger = discard{}

func NewNopLogger() Logger { return discardLogger }

func (discard) DebugEnabled() bool    { return false }
func (discard) SetDebug(bool)         {}
func (discard) Debugf(string, ...any) {}
func (discard) Infof(string, ...any)  {}
func (discard) Warnf(string, ...any)  {}
func (discard) Errorf(string, ...any) {}

// Logger returns the installed Logger resource, or a discarding one. Never
// returns nil.
func (host *Host) Logger() Logger {
	if host == nil {
		return discardLogger
	}
	for _, r := range host.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return discardLogger
}
