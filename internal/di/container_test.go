package di

import (
	"bytes"
	"context"
	"strings"
	"testing"

	generatecmd "github.com/goliatone/go-svglist/internal/commands/generate"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/logging/gologger"
	"github.com/goliatone/go-svglist/internal/output"
	"github.com/goliatone/go-svglist/internal/runtimeconfig"
	"github.com/spf13/afero"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Src = "/icons"
	cfg.Dest = "/out"
	return cfg
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := testConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewContainer(runtimeconfig.DefaultConfig()); err == nil {
		t.Fatal("expected missing src/dest to be rejected")
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/icons/arrows/left.svg", []byte(`<svg viewbox="0 0 24 24"><path d="M1 1"/></svg>`), 0o644)
	_ = afero.WriteFile(fs, "/icons/arrows/right.svg", []byte(`<svg viewbox="0 0 24 24"><path d="M1 1"></svg>`), 0o644)

	cfg := testConfig()
	cfg.Format = "json"
	var logs bytes.Buffer
	container, err := NewContainer(cfg, WithFS(fs), WithLogWriter(&logs))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	cmd, err := generatecmd.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	var report *iconset.RunReport
	cmd.ResultCallback = func(r *iconset.RunReport) { report = r }

	if err := container.GenerateHandler().Execute(context.Background(), cmd); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if report == nil || report.FileFailures != 1 || report.Artifacts != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if failure := report.Directories[0].Failures[0]; failure.Key != "right" {
		t.Fatalf("expected failure naming right, got %+v", failure)
	}

	data, err := afero.ReadFile(fs, "/out/arrows.json")
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	want := "{\n  \"left\": {\n    \"viewbox\": \"0 0 24 24\",\n    \"paths\": [\"M1 1\"]\n  }\n}\n"
	if string(data) != want {
		t.Fatalf("unexpected artifact\nwant: %q\ngot:  %q", want, data)
	}
	line := logs.String()
	if !strings.Contains(line, "svglist.directory.file_failed") ||
		!strings.Contains(line, "file=/icons/arrows/right.svg") ||
		!strings.Contains(line, "directory=arrows") ||
		!strings.Contains(line, "stage=normalize") {
		t.Fatalf("expected file failure log line, got:\n%s", logs.String())
	}

	if err := container.GenerateHandler().Execute(context.Background(), cmd); err != nil {
		t.Fatalf("second Execute returned error: %v", err)
	}
	again, _ := afero.ReadFile(fs, "/out/arrows.json")
	if !bytes.Equal(data, again) {
		t.Fatal("expected byte-identical artifacts across runs")
	}
}

func TestGenerateCodeFormWithFormatter(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/icons/ui-kit/close.svg", []byte(`<svg viewBox="0 0 10 10"><path d="M0 0L10 10"/></svg>`), 0o644)

	container, err := NewContainer(testConfig(), WithFS(fs), WithLogWriter(&bytes.Buffer{}), WithFormatter(output.PassThrough))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	cmd, _ := generatecmd.FromConfig(container.Config)
	if err := container.GenerateHandler().Execute(context.Background(), cmd); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	data, err := afero.ReadFile(fs, "/out/uiKit.js")
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "const uiKit = {") || !strings.HasSuffix(string(data), "export default uiKit;\n") {
		t.Fatalf("unexpected code artifact:\n%s", data)
	}
}
