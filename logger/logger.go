package logger

import (
	"io"
	"log/slog"
	"os"
)

type Level int

const (
	InfoLevel Level = iota
	DebugLevel
	WarnLevel
	ErrorLevel
	DefaultLevel Level = InfoLevel
)

var levels = map[Level]slog.Level{
	DebugLevel: slog.LevelDebug,
	InfoLevel:  slog.LevelInfo,
	WarnLevel:  slog.LevelWarn,
	ErrorLevel: slog.LevelError,
}

type Type int

const (
	TypeText Type = iota
	TypeJSON
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	Buffer io.Writer
	Level  Level
	Type   Type
}

// DefaultLogger writes text records to stderr. Stdout is left to the
// host: a line transformer's own output usually goes there.
var DefaultLogger = New(Options{os.Stderr, DefaultLevel, TypeText})

type logger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	var handler slog.Handler
	switch opts.Type {
	case TypeJSON:
		handler = slog.NewJSONHandler(opts.Buffer, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	case TypeText:
		fallthrough
	default:
		handler = slog.NewTextHandler(opts.Buffer, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	}
	return &logger{
		Logger: slog.New(handler),
	}
}
