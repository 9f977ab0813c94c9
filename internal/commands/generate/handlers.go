package generatecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-svglist/internal/commands"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/output"
	"github.com/goliatone/go-svglist/pkg/interfaces"
)

// ErrPipelineUnavailable is returned when the handler has no service factory.
var ErrPipelineUnavailable = errors.New("generate: pipeline factory is not configured")

// ServiceFactory builds the pipeline for one run.
type ServiceFactory func(cfg iconset.Config, format output.Format) iconset.Service

// GenerateHandler runs the pipeline through the shared command handler.
type GenerateHandler struct {
	inner *commands.Handler[GenerateCommand]
}

// NewGenerateHandler constructs a handler using factory to build each run.
func NewGenerateHandler(factory ServiceFactory, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateCommand]) *GenerateHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg GenerateCommand) error {
		if factory == nil {
			return ErrPipelineUnavailable
		}
		service := factory(msg.pipelineConfig(), output.ParseFormat(msg.Format))
		report, err := service.Run(ctx)
		if err != nil {
			return err
		}
		baseLogger.Info("svglist.generate.summary",
			"run_id", report.RunID.String(),
			"summary", report.Summary(),
		)
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand]("svglist.generate"),
		// Runs are bounded by the caller's context only.
		commands.WithTimeout[GenerateCommand](0),
		commands.WithMessageFields(func(msg GenerateCommand) map[string]any {
			fields := map[string]any{
				"src":    msg.SourceRoot,
				"dest":   msg.DestRoot,
				"format": string(output.ParseFormat(msg.Format)),
			}
			if msg.PassAllAttributes {
				fields["pass_all_attributes"] = true
			}
			return fields
		}),
		commands.WithReporter(commands.LogReporter[GenerateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[GenerateCommand].
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}
