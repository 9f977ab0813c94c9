package logging

import (
	"context"

	"github.com/goliatone/go-svglist/pkg/interfaces"
)

const (
	rootModule    = "svglist"
	iconsetModule = "svglist.iconset"
	outputModule  = "svglist.output"
	commandModule = "svglist.command"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{FieldModule: module})
}

// RootLogger returns the top level svglist logger.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// IconsetLogger returns the logger namespace reserved for the extraction pipeline.
func IconsetLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, iconsetModule)
}

// OutputLogger returns the logger namespace reserved for artifact output.
func OutputLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outputModule)
}

// CommandLogger returns the logger namespace reserved for command handlers.
func CommandLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandModule)
}

// FileLogger annotates logger with the identity of an icon file. Blank parts
// are left out.
func FileLogger(logger interfaces.Logger, directory, file, key string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		FieldDirectory: directory,
		FieldFile:      file,
		FieldKey:       key,
	})
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
