package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-svglist"
	"github.com/spf13/afero"
)

func stubBuilders(t *testing.T, fs afero.Fs, logs io.Writer) {
	t.Helper()
	originalLoader, originalBuilder := configLoader, moduleBuilder
	t.Cleanup(func() {
		configLoader, moduleBuilder = originalLoader, originalBuilder
	})

	configLoader = func(ctx context.Context, path string, opts ...svglist.LoaderOption) (svglist.Config, error) {
		opts = append(opts,
			svglist.WithConfigFS(fs),
			svglist.WithWorkDir("/work"),
			svglist.WithEnviron(func() []string { return nil }),
		)
		return svglist.LoadConfig(ctx, path, opts...)
	}
	moduleBuilder = func(cfg svglist.Config) (*svglist.Module, error) {
		return svglist.New(cfg, svglist.WithFS(fs), svglist.WithLogWriter(logs))
	}
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateIsTheDefaultCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/work/.svglistrc.json", []byte(`{"src":"icons","dest":"dist","format":"json"}`), 0o644)
	_ = afero.WriteFile(fs, "/work/icons/arrows/left.svg", []byte(`<svg viewBox="0 0 24 24"><path d="M1 1"/></svg>`), 0o644)
	_ = afero.WriteFile(fs, "/work/icons/arrows/right.svg", []byte(`<svg><path d="M1 1"></svg>`), 0o644)
	var logs bytes.Buffer
	stubBuilders(t, fs, &logs)

	out, err := execute()
	if err != nil {
		t.Fatalf("expected partial failures to exit cleanly, got %v", err)
	}
	if !strings.Contains(out, "1 artifact(s), 1 icon(s), 1 file failure(s)") {
		t.Fatalf("unexpected summary %q", out)
	}
	data, err := afero.ReadFile(fs, "/work/dist/arrows.json")
	if err != nil {
		t.Fatalf("expected artifact: %v", err)
	}
	if !strings.Contains(string(data), `"left"`) || strings.Contains(string(data), `"right"`) {
		t.Fatalf("unexpected artifact content %s", data)
	}
	if !strings.Contains(logs.String(), "right.svg") {
		t.Fatalf("expected failure to be logged, got %s", logs.String())
	}
}

func TestGenerateUsesConfigFlag(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/work/conf/icons.json", []byte(`{"src":"icons","dest":"dist","format":"json"}`), 0o644)
	_ = fs.MkdirAll("/work/icons/empty", 0o755)
	stubBuilders(t, fs, io.Discard)

	if _, err := execute("generate", "--config", "conf/icons.json", "--log-level", "error"); err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	data, err := afero.ReadFile(fs, "/work/dist/empty.json")
	if err != nil {
		t.Fatalf("expected empty artifact: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("expected empty object, got %q", data)
	}
}

func TestGenerateFailsOnConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubBuilders(t, fs, io.Discard)

	_, err := execute()
	if !errors.Is(err, svglist.ErrConfigFileMissing) {
		t.Fatalf("expected ErrConfigFileMissing, got %v", err)
	}

	_ = afero.WriteFile(fs, "/work/.svglistrc.json", []byte(`{"src":"icons","dest":"dist"}`), 0o644)
	_, err = execute("--log-level", "loud")
	if !errors.Is(err, svglist.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestGenerateFailsOnMissingSourceRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/work/.svglistrc.json", []byte(`{"src":"missing","dest":"dist"}`), 0o644)
	stubBuilders(t, fs, io.Discard)

	if _, err := execute(); err == nil {
		t.Fatal("expected unreadable source root to fail the run")
	}
}

func TestPluginsCommandListsEngine(t *testing.T) {
	out, err := execute("plugins")
	if err != nil {
		t.Fatalf("plugins returned error: %v", err)
	}
	for _, want := range []string{"convertShapeToPath", "removeTitle", "default"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
