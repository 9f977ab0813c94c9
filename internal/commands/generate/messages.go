package generatecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/output"
	"github.com/goliatone/go-svglist/internal/runtimeconfig"
	"github.com/goliatone/go-svglist/internal/svgo"
)

const generateMessageType = "svglist.generate"

// ResultCallback receives the run report once the pipeline settles.
type ResultCallback func(*iconset.RunReport)

// GenerateCommand runs the extraction pipeline over SourceRoot and writes one
// artifact per subdirectory into DestRoot.
type GenerateCommand struct {
	// SourceRoot holds one subdirectory per icon set.
	SourceRoot string `json:"src"`
	// DestRoot receives the generated artifacts.
	DestRoot string `json:"dest"`
	// Format is "code" (default) or "json".
	Format string `json:"format,omitempty"`
	// Plugins is the transform chain; empty selects the default chain.
	Plugins []svgo.PluginSpec `json:"plugins,omitempty"`
	// PassAllAttributes records every path attribute except fill.
	PassAllAttributes    bool           `json:"pass_all_attributes,omitempty"`
	DirectoryConcurrency int            `json:"directory_concurrency,omitempty"`
	FileConcurrency      int            `json:"file_concurrency,omitempty"`
	ResultCallback       ResultCallback `json:"-"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate ensures the roots are present and enumerations are known.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SourceRoot, validation.Required, validation.By(notBlank("svglist.generate.src_required", "src is required"))),
		validation.Field(&cmd.DestRoot, validation.Required, validation.By(notBlank("svglist.generate.dest_required", "dest is required"))),
		validation.Field(&cmd.Format, validation.In(string(output.FormatCode), string(output.FormatJSON))),
		validation.Field(&cmd.DirectoryConcurrency, validation.Min(0)),
		validation.Field(&cmd.FileConcurrency, validation.Min(0)),
	)
}

// FromConfig builds a command from a resolved configuration.
func FromConfig(cfg runtimeconfig.Config) (GenerateCommand, error) {
	plugins, err := cfg.PluginSpecs()
	if err != nil {
		return GenerateCommand{}, err
	}
	return GenerateCommand{
		SourceRoot:           cfg.Src,
		DestRoot:             cfg.Dest,
		Format:               string(cfg.OutputFormat()),
		Plugins:              plugins,
		PassAllAttributes:    cfg.PassAllAttributes,
		DirectoryConcurrency: cfg.Concurrency.Directories,
		FileConcurrency:      cfg.Concurrency.Files,
	}, nil
}

func (cmd GenerateCommand) pipelineConfig() iconset.Config {
	plugins := cmd.Plugins
	if len(plugins) == 0 {
		plugins = svgo.DefaultPlugins()
	}
	mode := iconset.ModeSimple
	if cmd.PassAllAttributes {
		mode = iconset.ModeAttributed
	}
	return iconset.Config{
		SourceRoot:           strings.TrimSpace(cmd.SourceRoot),
		DestRoot:             strings.TrimSpace(cmd.DestRoot),
		Plugins:              plugins,
		Mode:                 mode,
		DirectoryConcurrency: cmd.DirectoryConcurrency,
		FileConcurrency:      cmd.FileConcurrency,
	}
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
