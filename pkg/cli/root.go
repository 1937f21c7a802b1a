package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/internal/cliconfig"
	"github.com/getmockd/mockhttp/pkg/cli/internal/output"
	"github.com/getmockd/mockhttp/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globals holds state shared by all subcommands.
type globals struct {
	logLevel   string
	logFormat  string
	jsonOutput bool
	workDir    string

	cfg    *cliconfig.Config
	logger *slog.Logger
}

// NewRootCommand builds the mockhttp command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "mockhttp",
		Short: "mockhttp checks and exercises HTTP request mappings",
		Long: `mockhttp loads request mappings from YAML fixture files and answers
requests from them without touching the network.

Configuration can be provided via flags, environment variables (MOCKHTTP_*),
or a .mockhttp.yaml file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: text, json")
	root.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Output command results in JSON format")
	root.PersistentFlags().StringVarP(&g.workDir, "dir", "C", "", "Resolve relative paths and .mockhttp.yaml from this directory")

	root.AddCommand(
		newCheckCommand(g),
		newResolveCommand(g),
		newVersionCommand(g),
	)
	return root
}

// load resolves configuration and builds the logger.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll(g.workDir)
	if err != nil {
		return err
	}

	flags := &cliconfig.Config{}
	if cmd.Flags().Changed("log-level") {
		flags.LogLevel = g.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		flags.LogFormat = g.logFormat
	}
	cliconfig.MergeConfig(cfg, flags, cliconfig.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	g.cfg = cfg
	g.logger = logging.New(lc).With("component", "cli")
	g.logger.Debug("configuration loaded",
		"logLevel", cfg.LogLevel, "logLevelSource", cfg.Sources["logLevel"],
		"fixtures", len(cfg.Fixtures), "fixturesSource", cfg.Sources["fixtures"])
	return nil
}

// printResult writes data as JSON when --json is set, and calls textFn
// otherwise.
func (g *globals) printResult(w io.Writer, data any, textFn func() error) error {
	if g.jsonOutput {
		return output.JSON(w, data)
	}
	return textFn()
}

// Run executes the command with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// Main runs the command with the process arguments.
func Main() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func newVersionCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{"version": Version, "commit": Commit, "buildDate": BuildDate}
			return g.printResult(cmd.OutOrStdout(), info, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "mockhttp %s (commit %s, built %s)\n", Version, Commit, BuildDate)
				return err
			})
		},
	}
}
