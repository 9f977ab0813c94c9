package interfaces

import "context"

// Logger defines the leveled logging contract used across svglist. It
// mirrors github.com/goliatone/go-logger so that package plugs in through a
// thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers, one per module (svglist.iconset,
// svglist.output, ...).
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension returning a child logger that
// stamps the supplied fields on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
