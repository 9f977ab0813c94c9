// Package commands adapts go-command handlers with the concerns every svglist
// command shares: message validation, an execution deadline, structured
// logging and categorized errors.
package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/pkg/interfaces"
)

// DefaultTimeout bounds a single execution.
const DefaultTimeout = 10 * time.Minute

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// MessageFields derives structured log fields from a message.
type MessageFields[T command.Message] func(msg T) map[string]any

// Handler satisfies command.Commander[T] around an execution function.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    MessageFields[T]
	reporter  Reporter[T]
}

// NewHandler wraps fn. It panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute validates msg, runs it under the handler deadline and reports the
// outcome. Returned errors carry a go-errors category and text code.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return rejected(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	fields := h.messageFields(msg)
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("svglist.command.start")

	started := time.Now()
	err := h.exec(ctx, msg)
	status := statusOf(ctx, err)
	switch {
	case err != nil:
		err = failed(err)
	case status == StatusInterrupted:
		err = interrupted(ctx.Err())
	}

	outcome := Outcome{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		Fields:    fields,
		Duration:  time.Since(started),
		Status:    status,
		Err:       err,
	}
	if h.reporter != nil {
		h.reporter(ctx, msg, outcome)
	} else if err != nil {
		logger.Error("svglist.command.done", "status", string(status), "error", err)
	}
	return err
}

func (h *Handler[T]) messageFields(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	return fields
}

// WithTimeout overrides DefaultTimeout. Zero or a negative value disables the
// deadline.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger injects the execution logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields attaches message derived fields to every log entry.
func WithMessageFields[T command.Message](fn MessageFields[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithReporter registers a callback invoked once per execution.
func WithReporter[T command.Message](reporter Reporter[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.reporter = reporter
	}
}
