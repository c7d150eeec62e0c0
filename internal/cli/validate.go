package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
)

func newValidateCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration without generating anything",
		Long: `Validate a CLI configuration file.

Every problem in the file is reported at once, each with the path of the
offending field.

Examples:
  clismith validate clismith.yaml
  clismith validate tool.json`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Validate(cmd.Context(), app.ValidateOptions{
				ConfigPath: args[0],
				Pipeline:   s.pipeline(),
			})
			if err != nil {
				return err
			}

			cfg := result.Compiled.Config
			s.out.success("%s is valid", args[0])
			s.out.info("  %s (%s), %s in %s, target %s",
				cfg.DisplayName, cfg.CommandName,
				plural(result.Commands, "command"), plural(result.Groups, "group"),
				cfg.Language)
			s.out.info("  features: %s", result.Compiled.Features)
			return nil
		},
	}
}
