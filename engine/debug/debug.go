// Package debug is the shared diagnostic channel for the engine. Diagnostics that
// describe recoverable, data-shaped problems (a uniform without a value, a deprecated
// shader chunk macro, an unknown shape type name) are reported here at most once per
// distinct message so that per-frame code paths cannot flood the log.
package debug

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger = newDefaultLogger()
	seen   = make(map[string]struct{})
)

func newDefaultLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// SetLogger replaces the logger diagnostics are written to.
// Passing nil restores the default stderr logger.
//
// Parameters:
//   - l: the logger to write diagnostics to, or nil
func SetLogger(l *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = newDefaultLogger()
	}
	logger = l
}

// WarnOnce logs a formatted warning the first time a given message is seen.
// Later calls with an identical formatted message are dropped.
//
// Parameters:
//   - format: a fmt format string
//   - args: the format arguments
//
// Returns:
//   - bool: true if the message was written, false if it was suppressed
func WarnOnce(format string, args ...any) bool {
	return once("[Warn] " + fmt.Sprintf(format, args...))
}

// Deprecated logs a deprecation notice the first time a given message is seen.
//
// Parameters:
//   - message: the deprecation notice
//
// Returns:
//   - bool: true if the message was written, false if it was suppressed
func Deprecated(message string) bool {
	return once("[Deprecated] " + message)
}

// UnknownShapeType reports a collision or shape type name that the component system
// could not map to a known shape.
//
// Parameters:
//   - name: the unrecognized type name
//
// Returns:
//   - bool: true if the message was written, false if it was suppressed
func UnknownShapeType(name string) bool {
	return WarnOnce("unknown shape type %q", name)
}

// ResetOnce forgets every message seen so far, so the next occurrence of each
// diagnostic is written again.
func ResetOnce() {
	mu.Lock()
	defer mu.Unlock()
	clear(seen)
}

func once(msg string) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := seen[msg]; ok {
		return false
	}
	seen[msg] = struct{}{}
	logger.Print(msg)
	return true
}
