// Package debug provides opt-in diagnostic logging for wikienrich.
//
// Logging is off unless WIKIENRICH_DEBUG is set or SetVerbose(true) is
// called. Output goes to stderr by default; SetLogFile redirects it to a
// size-rotated file.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	enabled           = os.Getenv("WIKIENRICH_DEBUG") != ""
	out     io.Writer = os.Stderr
	closer  io.Closer
)

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetVerbose turns debug logging on or off. The environment variable only
// sets the initial state.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = v || os.Getenv("WIKIENRICH_DEBUG") != ""
}

// SetOutput replaces the log destination. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// RotationOptions controls log file rotation. Zero values fall back to
// lumberjack's defaults.
type RotationOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetLogFile routes log output to path, rotating it by size.
func SetLogFile(path string, opts RotationOptions) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	out = lj
	closer = lj
}

// HasLogFile reports whether output currently goes to a log file.
func HasLogFile() bool {
	mu.Lock()
	defer mu.Unlock()
	return closer != nil
}

// Close releases the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	out = os.Stderr
	return err
}

// Logf writes a formatted message when debug logging is enabled.
func Logf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(out, format, args...)
}

// Printf writes a formatted message regardless of the debug setting. Serve
// mode uses it for request logging so the rotating log file sees every
// request.
func Printf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(out, format, args...)
}
