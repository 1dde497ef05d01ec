// Package logger configures the process-wide zerolog setup.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the minimum level and output format.
type Config struct {
	// Level is one of debug, info, warn, error, fatal, panic.
	Level string

	// Format is "json" or "console".
	Format string

	// EnableCaller adds file:line of the call site to each entry.
	EnableCaller bool

	// ServiceName tags every entry with the emitting service.
	ServiceName string
}

// Logger wraps zerolog.Logger so infrastructure packages can hang helpers
// off it without touching zerolog itself.
type Logger struct {
	zerolog.Logger
}

// New builds a logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput builds a logger writing to the given writer. Tests pass a
// buffer here. Unknown or empty levels fall back to info rather than
// failing startup.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// WithComponent tags every entry with the emitting component, so the store,
// sheet parser, and snapshot layers are distinguishable in a shared stream.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.With().Str("component", name).Logger()}
}

// SetGlobal installs l as zerolog's package-level log.Logger so code using
// the zerolog/log shorthand shares the configured sink.
func SetGlobal(l *Logger) {
	log.Logger = l.Logger
}
