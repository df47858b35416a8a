package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	level   = new(slog.LevelVar)
	logger  = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DebugEnabled returns true if debug mode is enabled via WT_DEBUG or SetVerbose
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose || os.Getenv("WT_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of WT_DEBUG.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Logger returns the structured logger. Debug records are dropped unless
// debug mode is enabled.
func Logger() *slog.Logger {
	if DebugEnabled() {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

// Debugln prints a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
}
