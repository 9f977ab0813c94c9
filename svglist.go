package svglist

import (
	"context"

	generatecmd "github.com/goliatone/go-svglist/internal/commands/generate"
	"github.com/goliatone/go-svglist/internal/di"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/svgo"
)

// RunReport exports the pipeline run summary.
type RunReport = iconset.RunReport

// DirectoryReport exports the per-directory outcome.
type DirectoryReport = iconset.DirectoryReport

// FileError exports file level failures.
type FileError = iconset.FileError

// DirectoryError exports directory level failures.
type DirectoryError = iconset.DirectoryError

// Plugin exports a transform plugin description.
type Plugin = svgo.Plugin

// Option customises module wiring.
type Option = di.Option

var (
	WithFS             = di.WithFS
	WithLoggerProvider = di.WithLoggerProvider
	WithLogWriter      = di.WithLogWriter
	WithFormatter      = di.WithFormatter
)

// Module is the top level svglist runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module for cfg. The configuration is validated here.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generate runs the pipeline once and returns its report. Partial failures
// are reported on the RunReport; only an unreadable source root or an
// invalid configuration returns an error.
func (m *Module) Generate(ctx context.Context) (*RunReport, error) {
	cmd, err := generatecmd.FromConfig(m.container.Config)
	if err != nil {
		return nil, err
	}
	var report *RunReport
	cmd.ResultCallback = func(r *RunReport) { report = r }
	if err := m.container.GenerateHandler().Execute(ctx, cmd); err != nil {
		return nil, err
	}
	return report, nil
}

// Plugins lists the transform plugins implemented by the engine.
func Plugins() []Plugin {
	return svgo.Supported()
}

// PluginSpec exports a plugin selection entry.
type PluginSpec = svgo.PluginSpec

// DefaultPlugins returns the plugin list used when the configuration names
// none.
func DefaultPlugins() []PluginSpec {
	return svgo.DefaultPlugins()
}
