package svglist

import (
	"context"

	"github.com/goliatone/go-svglist/internal/runtimeconfig"
)

var (
	ErrSourceRequired         = runtimeconfig.ErrSourceRequired
	ErrDestRequired           = runtimeconfig.ErrDestRequired
	ErrConfigFileMissing      = runtimeconfig.ErrConfigFileMissing
	ErrConfigFileInvalid      = runtimeconfig.ErrConfigFileInvalid
	ErrPluginsInvalid         = runtimeconfig.ErrPluginsInvalid
	ErrConcurrencyInvalid     = runtimeconfig.ErrConcurrencyInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	ConcurrencyConfig = runtimeconfig.ConcurrencyConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	LoaderOption      = runtimeconfig.LoaderOption
)

var (
	WithConfigFS = runtimeconfig.WithFS
	WithWorkDir  = runtimeconfig.WithWorkDir
	WithEnviron  = runtimeconfig.WithEnviron
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads the configuration file at path (.svglistrc.json in the
// working directory when empty) with SVGLIST_ environment overrides.
func LoadConfig(ctx context.Context, path string, opts ...LoaderOption) (Config, error) {
	return runtimeconfig.NewLoader(opts...).Load(ctx, path)
}
