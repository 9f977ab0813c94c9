package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/output"
	"github.com/goliatone/go-svglist/internal/svgo"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".svglistrc.json"

// EnvPrefix prefixes environment overrides (SVGLIST_SRC, SVGLIST_DEST, ...).
const EnvPrefix = "SVGLIST_"

// ErrSourceRequired reports a missing src setting.
var ErrSourceRequired = errors.New("svglist config: src is required")

// ErrDestRequired reports a missing dest setting.
var ErrDestRequired = errors.New("svglist config: dest is required")

// ErrConfigFileMissing reports that the configuration file could not be read.
var ErrConfigFileMissing = errors.New("svglist config: configuration file not found")

// ErrConfigFileInvalid reports a configuration file that is not a JSON object.
var ErrConfigFileInvalid = errors.New("svglist config: configuration file is not valid JSON")
var ErrPluginsInvalid = errors.New("svglist config: plugins list is invalid")
var ErrConcurrencyInvalid = errors.New("svglist config: concurrency must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("svglist config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("svglist config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("svglist config: logging format is invalid")

// Config mirrors the .svglistrc.json document. Paths stay as written until
// Resolve anchors them to a working directory.
type Config struct {
	Src               string            `koanf:"src"`
	Dest              string            `koanf:"dest"`
	Format            string            `koanf:"format"`
	Plugins           []any             `koanf:"plugins"`
	PassAllAttributes bool              `koanf:"passAllAttributes"`
	Concurrency       ConcurrencyConfig `koanf:"concurrency"`
	Logging           LoggingConfig     `koanf:"logging"`
}

// ConcurrencyConfig bounds the pipeline fan-out. Zero selects GOMAXPROCS.
type ConcurrencyConfig struct {
	Directories int `koanf:"directories"`
	Files       int `koanf:"files"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider string `koanf:"provider"`
	Level    string `koanf:"level"`
	Format   string `koanf:"format"`
}

// DefaultConfig returns the defaults applied beneath the configuration file.
func DefaultConfig() Config {
	return Config{
		Format: string(output.FormatCode),
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate ensures required settings are present and enumerations are known.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Src) == "" {
		return ErrSourceRequired
	}
	if strings.TrimSpace(cfg.Dest) == "" {
		return ErrDestRequired
	}
	if cfg.Concurrency.Directories < 0 {
		return fmt.Errorf("%w: directories", ErrConcurrencyInvalid)
	}
	if cfg.Concurrency.Files < 0 {
		return fmt.Errorf("%w: files", ErrConcurrencyInvalid)
	}
	if _, err := svgo.DecodePlugins(cfg.Plugins); err != nil {
		return fmt.Errorf("%w: %w", ErrPluginsInvalid, err)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// Resolve anchors relative src/dest paths to workDir.
func (cfg Config) Resolve(workDir string) Config {
	resolved := cfg
	resolved.Src = resolvePath(workDir, cfg.Src)
	resolved.Dest = resolvePath(workDir, cfg.Dest)
	return resolved
}

// OutputFormat maps the format setting onto the serializer enumeration.
func (cfg Config) OutputFormat() output.Format {
	return output.ParseFormat(cfg.Format)
}

// AttributeMode maps passAllAttributes onto the extractor enumeration.
func (cfg Config) AttributeMode() iconset.AttributeMode {
	if cfg.PassAllAttributes {
		return iconset.ModeAttributed
	}
	return iconset.ModeSimple
}

// PluginSpecs decodes the plugin list. An empty list selects the default
// transform chain.
func (cfg Config) PluginSpecs() ([]svgo.PluginSpec, error) {
	if len(cfg.Plugins) == 0 {
		return svgo.DefaultPlugins(), nil
	}
	specs, err := svgo.DecodePlugins(cfg.Plugins)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPluginsInvalid, err)
	}
	return specs, nil
}

func resolvePath(workDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || workDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
