package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DrSkyle/linkpath/pkg/config"
	"github.com/DrSkyle/linkpath/pkg/display"
	"github.com/DrSkyle/linkpath/pkg/engine"
	"github.com/DrSkyle/linkpath/pkg/tui"
	"github.com/DrSkyle/linkpath/pkg/version"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: "Shortest paths through a link graph",
		Long: `linkpath - Link Graph Path Finder

Load a directed graph of named pages and ask how to get from one to another.`,
		Version:       version.Current,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	d := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default ~/.linkpath.yaml)")
	pf.String("nodes", "", "Node file, local path or s3://bucket/key")
	pf.String("edges", "", "Edge file, local path or s3://bucket/key")
	pf.Bool("strict", false, "Abort on the first malformed record")
	pf.Int("max-reported", d.MaxReported, "Skipped records logged individually")
	pf.Int("max-depth", 0, "Longest path searched, in edges (0 is unlimited)")
	pf.String("filter", "", "CEL expression a vertex must satisfy to appear on a path")
	pf.Duration("query-timeout", d.QueryTimeout, "Time limit per query")
	pf.Int("concurrency", d.Concurrency, "Parallel batch queries")
	pf.Uint64("seed", 0, "Seed for random endpoints (0 is random)")
	pf.String("region", "", "AWS Region for s3:// locations")
	pf.String("s3-endpoint", "", "Custom S3 endpoint")
	pf.Bool("json-logs", false, "Log as JSON")
	pf.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	pf.Bool("no-color", false, "Disable styled output")
	pf.String("otel-endpoint", "", "OTLP/HTTP trace endpoint")
	pf.Bool("skip-telemetry", false, "Disable tracing and metrics")
	pf.String("metrics", d.Metrics, "Metrics exporter (none, prometheus, stdout)")

	pf.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = a.v.BindPFlag(flagKey(f.Name), f)
	})

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(
		newPathCmd(a),
		newLengthCmd(a),
		newBatchCmd(a),
		newStatsCmd(a),
		newReachCmd(a),
		newServeCmd(a),
		newCompletionCmd(),
	)
	return rootCmd
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// initConfig merges the config file, LINKPATH_* variables and flags.
func (a *app) initConfig() error {
	explicit := a.cfgFile != ""
	if explicit {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.SetConfigFile(filepath.Join(home, ".linkpath.yaml"))
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("LINKPATH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	config.SetDefaults(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if explicit || !missing {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// engine builds an Engine and loads the configured graph. The caller owns
// the returned engine and must Close it.
func (a *app) engine(cmd *cobra.Command) (*engine.Engine, error) {
	if err := a.initConfig(); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	logger := engine.NewLogger(stderr, a.cfg.JSONLogs, a.cfg.LogLevel)
	eng, err := engine.New(ctx,
		engine.WithLogger(logger),
		engine.WithConfig(a.cfg),
	)
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context) error {
		_, err := eng.Load(ctx)
		return err
	}
	if interactive(stderr) && !a.cfg.JSONLogs {
		err = tui.RunWithSpinner(ctx, stderr, "Loading graph", load)
	} else {
		err = load(ctx)
	}
	if err != nil {
		_ = eng.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return eng, nil
}

func (a *app) renderer() *display.Renderer {
	return display.NewRenderer(a.cfg.NoColor)
}

// interactive reports whether w is a terminal.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func closeEngine(cmd *cobra.Command, eng *engine.Engine) {
	if err := eng.Close(context.WithoutCancel(cmd.Context())); err != nil {
		eng.Logger.Warn("Telemetry shutdown failed", "error", err)
	}
}

func renderHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("LINKPATH %s", version.Current)))
	if cmd.Long != "" {
		fmt.Fprintln(out, cmd.Long)
	} else {
		fmt.Fprintln(out, cmd.Short)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("USAGE"))
	fmt.Fprintf(out, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(out)
	}

	if cmd.Example != "" {
		fmt.Fprintln(out, titleStyle.Render("EXAMPLES"))
		fmt.Fprintln(out, cmd.Example)
		fmt.Fprintln(out)
	}

	flags := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	flags.AddFlagSet(cmd.LocalFlags())
	flags.AddFlagSet(cmd.InheritedFlags())

	fmt.Fprintln(out, titleStyle.Render("FLAGS"))
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(out, flagStyle.Render(output))
	})
	fmt.Fprintln(out)
}
