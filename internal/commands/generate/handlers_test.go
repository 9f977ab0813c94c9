package generatecmd

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-svglist/internal/commands"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/internal/output"
)

type stubService struct {
	report *iconset.RunReport
	err    error
	calls  int
}

func (s *stubService) Run(context.Context) (*iconset.RunReport, error) {
	s.calls++
	return s.report, s.err
}

func TestGenerateHandlerRunsPipeline(t *testing.T) {
	service := &stubService{report: &iconset.RunReport{Artifacts: 2}}
	var gotCfg iconset.Config
	var gotFormat output.Format
	factory := func(cfg iconset.Config, format output.Format) iconset.Service {
		gotCfg, gotFormat = cfg, format
		return service
	}

	var received *iconset.RunReport
	handler := NewGenerateHandler(factory, logging.NoOp())
	err := handler.Execute(context.Background(), GenerateCommand{
		SourceRoot:     "icons",
		DestRoot:       "out",
		Format:         "json",
		ResultCallback: func(r *iconset.RunReport) { received = r },
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.calls != 1 || received != service.report {
		t.Fatalf("expected pipeline to run once and report to be delivered")
	}
	if gotCfg.SourceRoot != "icons" || gotCfg.DestRoot != "out" || gotFormat != output.FormatJSON {
		t.Fatalf("unexpected pipeline config %+v format %s", gotCfg, gotFormat)
	}
	if len(gotCfg.Plugins) == 0 {
		t.Fatal("expected default plugins when none are supplied")
	}
}

func TestGenerateHandlerWrapsRunErrors(t *testing.T) {
	service := &stubService{err: iconset.ErrSourceRoot}
	handler := NewGenerateHandler(func(iconset.Config, output.Format) iconset.Service { return service }, nil)

	err := handler.Execute(context.Background(), GenerateCommand{SourceRoot: "icons", DestRoot: "out"})
	if !errors.Is(err, iconset.ErrSourceRoot) {
		t.Fatalf("expected ErrSourceRoot, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestGenerateHandlerRejectsInvalidCommand(t *testing.T) {
	service := &stubService{}
	handler := NewGenerateHandler(func(iconset.Config, output.Format) iconset.Service { return service }, nil)

	err := handler.Execute(context.Background(), GenerateCommand{DestRoot: "out"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if service.calls != 0 {
		t.Fatal("pipeline should not run for invalid commands")
	}
}

func TestGenerateHandlerRequiresFactory(t *testing.T) {
	err := NewGenerateHandler(nil, nil).Execute(context.Background(), GenerateCommand{SourceRoot: "icons", DestRoot: "out"})
	if !errors.Is(err, ErrPipelineUnavailable) {
		t.Fatalf("expected ErrPipelineUnavailable, got %v", err)
	}
}

type deadlineService struct {
	hasDeadline bool
}

func (s *deadlineService) Run(ctx context.Context) (*iconset.RunReport, error) {
	_, s.hasDeadline = ctx.Deadline()
	return &iconset.RunReport{}, nil
}

func TestGenerateHandlerDoesNotImposeDeadline(t *testing.T) {
	service := &deadlineService{}
	handler := NewGenerateHandler(func(iconset.Config, output.Format) iconset.Service { return service }, nil)

	if err := handler.Execute(context.Background(), GenerateCommand{SourceRoot: "icons", DestRoot: "out"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.hasDeadline {
		t.Fatal("expected the run to carry no handler deadline")
	}

	bounded := NewGenerateHandler(
		func(iconset.Config, output.Format) iconset.Service { return service },
		nil,
		commands.WithTimeout[GenerateCommand](time.Minute),
	)
	if err := bounded.Execute(context.Background(), GenerateCommand{SourceRoot: "icons", DestRoot: "out"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !service.hasDeadline {
		t.Fatal("expected an explicit timeout option to apply")
	}
}
