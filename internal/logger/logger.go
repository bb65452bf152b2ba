package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New. An empty Level means info; a nil Writer means stderr.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger is a structured logger. A nil *Logger discards everything, so
// optional loggers can be passed around without checks.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	build := zerolog.New(output(opts)).Level(level).With().Timestamp()
	if opts.Component != "" {
		build = build.Str("component", opts.Component)
	}
	return &Logger{base: build.Logger()}, nil
}

func parseLevel(raw string) (zerolog.Level, error) {
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(raw))
}

func output(opts Options) io.Writer {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if !opts.HumanReadable {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
}

// Nop returns a logger that discards every entry.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields derives a logger that adds fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(fields).Logger()}
}

// WithField derives a logger carrying one extra field.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) Debug(msg string) { l.emit(zerolog.DebugLevel, nil, msg) }

func (l *Logger) Info(msg string) { l.emit(zerolog.InfoLevel, nil, msg) }

// Warn logs msg at warn level; err is attached when non-nil.
func (l *Logger) Warn(err error, msg string) { l.emit(zerolog.WarnLevel, err, msg) }

// Error logs msg at error level; err is attached when non-nil.
func (l *Logger) Error(err error, msg string) { l.emit(zerolog.ErrorLevel, err, msg) }

func (l *Logger) emit(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
