package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-svglist/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, iconsetModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"directory": "arrows"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = IconsetLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != iconsetModule {
		t.Fatalf("expected module %s, got %v", iconsetModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != iconsetModule {
		t.Fatalf("expected module field %s, got %v", iconsetModule, rec.fields)
	}
}

func TestWithFieldsSkipsLoggersWithoutFieldSupport(t *testing.T) {
	plain := plainLogger{}
	if got := WithFields(plain, map[string]any{"directory": "arrows"}); got != plain {
		t.Fatalf("expected the plain logger back, got %T", got)
	}
	if WithFields(nil, map[string]any{"directory": "arrows"}) != nil {
		t.Fatal("expected nil logger to stay nil")
	}
}

type plainLogger struct{}

func (plainLogger) Trace(string, ...any) {}
func (plainLogger) Debug(string, ...any) {}
func (plainLogger) Info(string, ...any)  {}
func (plainLogger) Warn(string, ...any)  {}
func (plainLogger) Error(string, ...any) {}
func (plainLogger) Fatal(string, ...any) {}

func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "")
	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		rootModule:    RootLogger,
		outputModule:  OutputLogger,
		commandModule: CommandLogger,
	}
	for module, fn := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = fn(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestFileLoggerSkipsBlankFields(t *testing.T) {
	rec := &recordingLogger{}
	_ = FileLogger(rec, "arrows", " ", "left")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got["directory"] != "arrows" || got["key"] != "left" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got["file"]; ok {
		t.Fatalf("blank file should be skipped, got %v", got)
	}
}

func TestScopeFieldsTrackRunAndDirectory(t *testing.T) {
	if fields := ScopeFields(context.Background()); fields != nil {
		t.Fatalf("expected no fields on a bare context, got %v", fields)
	}

	ctx := WithRun(context.Background(), "r1")
	dirCtx := WithDirectory(ctx, "arrows")

	if RunID(dirCtx) != "r1" {
		t.Fatalf("expected run id to survive WithDirectory, got %q", RunID(dirCtx))
	}
	fields := ScopeFields(dirCtx)
	if fields[FieldRunID] != "r1" || fields[FieldDirectory] != "arrows" {
		t.Fatalf("unexpected scope fields %v", fields)
	}
	if _, ok := ScopeFields(ctx)[FieldDirectory]; ok {
		t.Fatal("parent context must not see the directory scope")
	}
}

func TestScopedAnnotatesLogger(t *testing.T) {
	rec := &recordingLogger{}
	_ = Scoped(WithRun(context.Background(), "r2"), rec)
	if len(rec.fields) != 1 || rec.fields[0][FieldRunID] != "r2" {
		t.Fatalf("expected run id field, got %v", rec.fields)
	}

	rec = &recordingLogger{}
	_ = Scoped(context.Background(), rec)
	if len(rec.fields) != 0 {
		t.Fatalf("expected no annotation without a scope, got %v", rec.fields)
	}
}
