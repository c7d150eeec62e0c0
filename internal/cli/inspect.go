package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/target"
)

// renderOne renders the single selected target of configPath.
func renderOne(cmd *cobra.Command, s *state, f *targetFlags, configPath string) (*app.Output, error) {
	name, err := f.singleTarget()
	if err != nil {
		return nil, err
	}
	opts := f.renderOptions(s, configPath)
	if name != "" {
		opts.Targets = []string{name}
	}
	result, err := app.Render(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return result.Outputs[0], nil
}

func newManifestCmd(s *state) *cobra.Command {
	f := &targetFlags{}
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "manifest <file>",
		Short: "List the files a target would generate",
		Long: `Print the output manifest of one target: the logical id, template
component and output path of every generated file.

Examples:
  clismith manifest clismith.yaml
  clismith manifest clismith.yaml --target rust --json`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderOne(cmd, s, f, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				data, err := app.Encode(out.Manifest, app.FormatJSON)
				if err != nil {
					return err
				}
				s.out.raw(data)
				return nil
			}

			rows := make([][]string, 0, len(out.Manifest.Files))
			for _, file := range out.Manifest.Files {
				var flags []string
				if file.Executable {
					flags = append(flags, "executable")
				}
				if file.Preserve {
					flags = append(flags, "preserve")
				}
				rows = append(rows, []string{file.ID, file.Path, file.Component, strings.Join(flags, ",")})
			}
			s.out.info("Target: %s", out.Manifest.Target)
			s.out.table([]string{"ID", "PATH", "COMPONENT", "FLAGS"}, rows)
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, FlagJSON, false, DescJSON)
	return cmd
}

func newContextCmd(s *state) *cobra.Command {
	f := &targetFlags{}
	var format string
	cmd := &cobra.Command{
		Use:   "context <file>",
		Short: "Print the template context of a target",
		Long: `Print the data templates are rendered with. Useful when writing
template overrides for --templates.

Examples:
  clismith context clismith.yaml
  clismith context clismith.yaml --target python --format json`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderOne(cmd, s, f, args[0])
			if err != nil {
				return err
			}
			data, err := app.Encode(out.Context, format)
			if err != nil {
				return err
			}
			s.out.raw(data)
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVarP(&format, FlagFormat, "f", app.FormatYAML, DescFormat)
	return cmd
}

func newTargetsCmd(s *state) *cobra.Command {
	var components bool
	var templates string
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List supported target languages",
		Long: `List supported target languages.

With --components, list the templates each target is rendered from and
whether they come from the embedded set or the override directory.

Examples:
  clismith targets
  clismith targets --components --templates ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if components {
				dir := s.settings.Generate.TemplatesDir
				if cmd.Flags().Changed(FlagTemplates) {
					dir = templates
				}
				return listComponents(s, dir)
			}

			reg := s.pipeline().Registry()
			var rows [][]string
			for _, name := range reg.Names() {
				t, ok := target.Lookup(name)
				if !ok {
					rows = append(rows, []string{name, "", "", "", ""})
					continue
				}
				rows = append(rows, []string{t.Name, t.DisplayName, t.Framework, t.Convention.String(), t.FileExtension})
			}
			s.out.table([]string{"NAME", "LANGUAGE", "FRAMEWORK", "CONVENTION", "EXT"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&components, FlagComponents, false, DescComponents)
	cmd.Flags().StringVar(&templates, FlagTemplates, "", DescTemplates)
	return cmd
}

// listComponents prints every template the generator can read, grouped by
// the directory naming its target.
func listComponents(s *state, dir string) error {
	store, err := component.Open(dir, s.settings.Cache.Templates)
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}

	var override *component.DirStore
	if dir != "" {
		if override, err = component.NewDirStore(dir, ""); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		group := name
		if i := strings.Index(name, "/"); i >= 0 {
			group = name[:i]
		}
		source := "embedded"
		if override != nil && override.Has(name) {
			source = override.Root()
		}
		rows = append(rows, []string{group, name, source})
	}
	s.out.table([]string{"TARGET", "COMPONENT", "SOURCE"}, rows)
	return nil
}
