package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tacogips/clismith/internal/app"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagOutput     = "output"
	FlagOverwrite  = "overwrite"
	FlagConfig     = "config"
	FlagTarget     = "target"
	FlagAll        = "all"
	FlagTemplates  = "templates"
	FlagSkip       = "skip"
	FlagForce      = "force"
	FlagDryRun     = "dry-run"
	FlagFormat     = "format"
	FlagJSON       = "json"
	FlagScaffold   = "scaffold"
	FlagYes        = "yes"
	FlagDebounce   = "debounce"
	FlagComponents = "components"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"

	// Flag descriptions
	DescOutput     = "Output directory"
	DescOverwrite  = "Overwrite existing generated files (hooks files are never overwritten)"
	DescConfig     = "Path to the clismith settings file"
	DescTarget     = "Target language (repeatable; defaults to the language in the configuration)"
	DescAll        = "Generate every supported target, each into its own subdirectory"
	DescTemplates  = "Directory whose templates override the embedded ones"
	DescSkip       = "Glob pattern of output paths never to write (repeatable)"
	DescForce      = "Force overwrite"
	DescDryRun     = "Show actions without execution"
	DescFormat     = "Output format (json or yaml)"
	DescJSON       = "Output as JSON"
	DescScaffold   = "Starter layout to create"
	DescYes        = "Accept defaults without prompting"
	DescDebounce   = "Delay before regenerating after a change"
	DescComponents = "List the templates of every target instead of the targets"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress output"
	DescDebug      = "Enable debug logging"
)

// normalizeFlagName accepts underscores in flag names, so --dry_run and
// --dry-run are the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// targetFlags are the target selection flags shared by several commands.
type targetFlags struct {
	targets []string
	all     bool
}

func (f *targetFlags) register(cmd *cobra.Command, allowAll bool) {
	cmd.Flags().StringSliceVarP(&f.targets, FlagTarget, "t", nil, DescTarget)
	if allowAll {
		cmd.Flags().BoolVar(&f.all, FlagAll, false, DescAll)
	}
}

func (f *targetFlags) renderOptions(s *state, configPath string) app.RenderOptions {
	return app.RenderOptions{
		ConfigPath: configPath,
		Targets:    f.targets,
		All:        f.all,
		Pipeline:   s.pipeline(),
	}
}

// singleTarget returns the one requested target, or "" for the configured
// language.
func (f *targetFlags) singleTarget() (string, error) {
	if len(f.targets) > 1 {
		return "", fmt.Errorf("only one --%s may be given, got %s", FlagTarget, strings.Join(f.targets, ", "))
	}
	if len(f.targets) == 1 {
		return f.targets[0], nil
	}
	return "", nil
}
