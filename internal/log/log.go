// Package log provides categorised structured logging for forkline.
//
// Log output never goes to the command output stream. Until Init or InitFile
// is called every call is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Category groups log lines by subsystem.
type Category string

// Log categories.
const (
	CatCLI    Category = "cli"
	CatConfig Category = "config"
	CatREPL   Category = "repl"
	CatStore  Category = "store"
	CatTrace  Category = "trace"
	CatUI     Category = "ui"
)

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
)

// Init sends log output to w at the given level.
func Init(w io.Writer, level zerolog.Level) {
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	mu.Lock()
	logger = l
	mu.Unlock()
}

// InitFile appends log output to the file at path. The returned function
// closes the file.
func InitFile(path string, level zerolog.Level) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Init(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339}, level)
	return f.Close, nil
}

// Reset discards all further output.
func Reset() {
	mu.Lock()
	logger = zerolog.Nop()
	mu.Unlock()
}

// With adds a field to every subsequent line.
func With(key, value string) {
	mu.Lock()
	logger = logger.With().Str(key, value).Logger()
	mu.Unlock()
}

// ParseLevel maps a config level name to a zerolog level. The empty string
// means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// Debug logs a debug message with alternating key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	write(current().Debug(), cat, msg, kv)
}

// Info logs an informational message.
func Info(cat Category, msg string, kv ...any) {
	write(current().Info(), cat, msg, kv)
}

// Warn logs a warning.
func Warn(cat Category, msg string, kv ...any) {
	write(current().Warn(), cat, msg, kv)
}

// Error logs an error message.
func Error(cat Category, msg string, kv ...any) {
	write(current().Error(), cat, msg, kv)
}

// ErrorErr logs an error message with err attached.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	write(current().Error().Err(err), cat, msg, kv)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func write(e *zerolog.Event, cat Category, msg string, kv []any) {
	if e == nil {
		return
	}
	if len(kv)%2 != 0 {
		kv = append(kv, "(MISSING)")
	}
	e.Str("cat", string(cat)).Fields(kv).Msg(msg)
}
