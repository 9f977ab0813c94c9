package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/pkg/interfaces"
)

// Status classifies how an execution ended.
type Status string

const (
	StatusSucceeded   Status = "succeeded"
	StatusFailed      Status = "failed"
	StatusInterrupted Status = "interrupted"
)

// Outcome describes one finished execution.
type Outcome struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Status    Status
	Err       error
}

// Reporter receives the outcome of every execution.
type Reporter[T command.Message] func(ctx context.Context, msg T, outcome Outcome)

// LogReporter logs outcomes on logger: info for success, error otherwise.
func LogReporter[T command.Message](logger interfaces.Logger) Reporter[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, o Outcome) {
		entry := logging.WithFields(logger, o.Fields)
		args := []any{"status", string(o.Status), "duration_ms", o.Duration.Milliseconds()}
		if o.Err == nil {
			entry.Info("svglist.command.done", args...)
			return
		}
		entry.Error("svglist.command.done", append(args, "error", o.Err)...)
	}
}

// EnsureLogger returns logger, or a no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

func statusOf(ctx context.Context, err error) Status {
	switch {
	case err == nil && ctx.Err() == nil:
		return StatusSucceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), err == nil:
		return StatusInterrupted
	default:
		return StatusFailed
	}
}

// FamilyLogger returns the command module logger tagged with a command
// family such as "generate".
func FamilyLogger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	return logging.WithFields(logging.CommandLogger(provider), map[string]any{"family": family})
}
