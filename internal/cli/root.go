package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
)

// state holds the global flags and loaded settings of one invocation.
type state struct {
	noColor      bool
	quiet        bool
	debug        bool
	settingsFile string

	settings *config.Settings
	out      *printer
	ask      askFunc
}

// pipeline builds the pipeline configured by the settings.
func (s *state) pipeline() *app.Pipeline {
	return app.NewPipeline(nil, app.ThresholdsFromSettings(s.settings))
}

// NewRootCmd creates the clismith command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&state{settings: config.DefaultSettings(), ask: survey.Ask})
}

func newRootCmd(s *state) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "clismith",
		Short: "Generate command-line programs for several languages from one description",
		Long: `clismith reads a YAML or JSON description of a command-line tool
(commands, arguments, options and nesting) and generates an equivalent
program for Python (click), Node.js and TypeScript (commander), Rust (clap)
or Go (cobra).

Generated command behavior lives in a hooks file that clismith writes once
and never overwrites, so the description can be regenerated freely.

Use "clismith init" to create a starter description, then
"clismith generate clismith.yaml".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug.SetDebug(s.debug)
			debug.SetNoColor(s.noColor)

			settings, err := config.LoadSettings(s.settingsFile)
			if err != nil {
				return err
			}
			s.settings = settings
			if !cmd.Flags().Changed(FlagNoColor) && !settings.Output.Color {
				s.noColor = true
			}
			if !cmd.Flags().Changed(FlagQuiet) && settings.Output.Quiet {
				s.quiet = true
			}
			s.out = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), s.quiet, s.noColor)
			debug.DebugJSON("[cli] Settings", settings)
			return nil
		},
	}

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.PersistentFlags().BoolVar(&s.noColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&s.quiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&s.debug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&s.settingsFile, FlagConfig, "", DescConfig)

	rootCmd.AddCommand(
		newValidateCmd(s),
		newGenerateCmd(s),
		newManifestCmd(s),
		newContextCmd(s),
		newTargetsCmd(s),
		newInitCmd(s),
		newWatchCmd(s),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree and exits with status 1 on failure.
func Execute() {
	s := &state{settings: config.DefaultSettings(), ask: survey.Ask}
	os.Exit(run(s, newRootCmd(s), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code. Errors are
// printed to errOut, with every schema error on its own line.
func run(s *state, root *cobra.Command, args []string, errOut io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		newPrinter(io.Discard, errOut, false, s.noColor).failure(err)
		return 1
	}
	return 0
}

// requireFile is an Args validator for commands taking one description file.
func requireFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s requires exactly one configuration file argument", cmd.Name())
	}
	return nil
}
