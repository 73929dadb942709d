// Package logger provides levelled wrappers over the standard log package.
// Diagnostics go to stderr so they never mix with the interactive dialog on stdout.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a logging severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	level atomic.Int32
	std   = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	level.Store(int32(LevelWarn))
}

// ParseLevel maps a level name to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// SetLevel sets the minimum level that is written. Unknown names fall back to INFO.
func SetLevel(name string) {
	l, err := ParseLevel(name)
	if err != nil {
		std.Printf("[WARN] %v; continuing at INFO", err)
	}
	level.Store(int32(l))
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func enabled(l Level) bool {
	return Level(level.Load()) <= l
}

func Debugf(format string, v ...any) {
	if enabled(LevelDebug) {
		std.Printf("[DEBUG] "+format, v...)
	}
}

func Infof(format string, v ...any) {
	if enabled(LevelInfo) {
		std.Printf("[INFO] "+format, v...)
	}
}

func Warnf(format string, v ...any) {
	if enabled(LevelWarn) {
		std.Printf("[WARN] "+format, v...)
	}
}

func Errorf(format string, v ...any) {
	if enabled(LevelError) {
		std.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf logs regardless of level and exits the process.
func Fatalf(format string, v ...any) {
	std.Fatalf("[FATAL] "+format, v...)
}
