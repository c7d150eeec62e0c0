package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/build"
)

func newVersionCmd() *cobra.Command {
	var (
		short  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for clismith.

Examples:
  clismith version
  clismith version --short
  clismith version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := build.Current()
			w := cmd.OutOrStdout()

			if short {
				fmt.Fprintln(w, info.Version)
				return nil
			}
			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			fmt.Fprintf(w, "clismith version %s\n", info.Version)
			fmt.Fprintf(w, "Built with: %s\n", info.GoVersion)
			fmt.Fprintf(w, "Commit: %s\n", info.Commit)
			fmt.Fprintf(w, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "OS/Arch: %s/%s\n", info.OS, info.Arch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Show version number only")
	cmd.Flags().BoolVar(&asJSON, FlagJSON, false, DescJSON)
	return cmd
}
