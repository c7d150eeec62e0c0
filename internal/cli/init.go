package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
)

func newInitCmd(s *state) *cobra.Command {
	var (
		scaffold string
		force    bool
		yes      bool
	)
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter configuration",
		Long: fmt.Sprintf(`Create a new CLI configuration file, asking for the package name,
command name, description and target language.

The file defaults to %s in the current directory. Defaults for every
answer are derived from the directory name; --yes accepts them without
prompting.

Examples:
  clismith init
  clismith init tool.yaml --scaffold nested
  clismith init --yes --force`, app.DefaultConfigFile),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			answers := app.DefaultAnswers(path)
			if !yes {
				var err error
				answers, err = PromptForAnswers(s.ask, answers, s.pipeline().Registry().Names())
				if err != nil {
					return err
				}
			}

			result, err := app.Init(cmd.Context(), app.InitOptions{
				Path:     path,
				Scaffold: scaffold,
				Answers:  answers,
				Force:    force,
			})
			if err != nil {
				return err
			}

			s.out.success("Created: %s", result.Path)
			s.out.info("")
			s.out.info("Next steps:")
			s.out.info("  1. Edit %s to describe your commands", result.Path)
			s.out.info("  2. Run: clismith generate %s", result.Path)
			return nil
		},
	}

	scaffolds, _ := app.AvailableScaffolds()
	cmd.Flags().StringVarP(&scaffold, FlagScaffold, "s", app.DefaultScaffold,
		fmt.Sprintf("%s (%s)", DescScaffold, strings.Join(scaffolds, ", ")))
	cmd.Flags().BoolVarP(&force, FlagForce, "f", false, DescForce)
	cmd.Flags().BoolVarP(&yes, FlagYes, "y", false, DescYes)
	return cmd
}
