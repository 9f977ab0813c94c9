package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-svglist/pkg/interfaces"
)

// Field names shared by pipeline log entries.
const (
	FieldModule    = "module"
	FieldRunID     = "run_id"
	FieldDirectory = "directory"
	FieldFile      = "file"
	FieldKey       = "key"
	FieldStage     = "stage"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
// Blank string values are dropped and the map is copied, so callers may
// reuse it.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return nil
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		if s, isString := value.(string); isString {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			value = s
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(kept)
}

type scopeKey struct{}

// scope identifies the run and source directory a context belongs to.
type scope struct {
	runID     string
	directory string
}

// WithRun marks ctx as belonging to the run identified by runID.
func WithRun(ctx context.Context, runID string) context.Context {
	current := scopeOf(ctx)
	current.runID = runID
	return context.WithValue(ensure(ctx), scopeKey{}, current)
}

// WithDirectory narrows ctx to one source directory of the current run.
func WithDirectory(ctx context.Context, directory string) context.Context {
	current := scopeOf(ctx)
	current.directory = directory
	return context.WithValue(ensure(ctx), scopeKey{}, current)
}

// RunID returns the run recorded on ctx, or an empty string.
func RunID(ctx context.Context) string {
	return scopeOf(ctx).runID
}

// ScopeFields returns the run and directory recorded on ctx as log fields.
func ScopeFields(ctx context.Context) map[string]any {
	current := scopeOf(ctx)
	fields := map[string]any{}
	if current.runID != "" {
		fields[FieldRunID] = current.runID
	}
	if current.directory != "" {
		fields[FieldDirectory] = current.directory
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Scoped annotates logger with the run and directory carried by ctx. It
// works with any provider, including those that ignore WithContext.
func Scoped(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	return WithFields(logger, ScopeFields(ctx))
}

func scopeOf(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	current, _ := ctx.Value(scopeKey{}).(scope)
	return current
}

func ensure(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
