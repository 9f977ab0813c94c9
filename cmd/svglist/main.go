package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-svglist"
	generatecmd "github.com/goliatone/go-svglist/internal/commands/generate"
	"github.com/spf13/cobra"
)

var (
	configLoader  = svglist.LoadConfig
	moduleBuilder = func(cfg svglist.Config) (*svglist.Module, error) {
		return svglist.New(cfg)
	}
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "svglist: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "svglist",
		Short:         "Compile folders of SVG icons into geometry artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), out, flags)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to the configuration file (defaults to ./.svglistrc.json)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	pf.StringVar(&flags.logFormat, "log-format", "", "Override the configured log format")

	root.AddCommand(
		generateCmd(out, flags),
		pluginsCmd(out),
	)
	return root
}

func generateCmd(out io.Writer, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate one artifact per icon directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), out, flags)
		},
	}
}

func pluginsCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the supported transform plugins",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			defaults := map[string]bool{}
			for _, spec := range svglist.DefaultPlugins() {
				defaults[spec.Name] = spec.Active
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, plugin := range svglist.Plugins() {
				state := "off"
				if defaults[plugin.Name] {
					state = "default"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", plugin.Name, state, plugin.Description)
			}
			return w.Flush()
		},
	}
}

func runGenerate(ctx context.Context, out io.Writer, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := configLoader(ctx, flags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(flags.logFormat); format != "" {
		cfg.Logging.Format = format
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	msg, err := generatecmd.FromConfig(module.Container().Config)
	if err != nil {
		return fmt.Errorf("build generate command: %w", err)
	}
	var report *svglist.RunReport
	msg.ResultCallback = func(r *svglist.RunReport) { report = r }

	sub := dispatcher.SubscribeCommand(module.Container().GenerateHandler())
	defer sub.Unsubscribe()

	if err := dispatcher.Dispatch(ctx, msg); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if report != nil {
		fmt.Fprintf(out, "svglist: %s\n", report.Summary())
	}
	return nil
}
