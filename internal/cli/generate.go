package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
)

type generateFlags struct {
	targetFlags
	output    string
	overwrite bool
	dryRun    bool
	templates string
	skip      []string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	f.targetFlags.register(cmd, true)
	cmd.Flags().StringVarP(&f.output, FlagOutput, "o", "", DescOutput)
	cmd.Flags().BoolVar(&f.overwrite, FlagOverwrite, false, DescOverwrite)
	cmd.Flags().BoolVar(&f.dryRun, FlagDryRun, false, DescDryRun)
	cmd.Flags().StringVar(&f.templates, FlagTemplates, "", DescTemplates)
	cmd.Flags().StringSliceVar(&f.skip, FlagSkip, nil, DescSkip)
}

// options merges the flags over the settings. Skip patterns from both are
// combined.
func (f *generateFlags) options(cmd *cobra.Command, s *state, configPath string) app.GenerateOptions {
	gs := s.settings.Generate
	opts := app.GenerateOptions{
		RenderOptions: f.renderOptions(s, configPath),
		OutputDir:     gs.OutputDir,
		Overwrite:     gs.Overwrite,
		DryRun:        f.dryRun,
		TemplatesDir:  gs.TemplatesDir,
		Skip:          append(append([]string(nil), gs.Skip...), f.skip...),
		CacheSize:     s.settings.Cache.Templates,
	}
	if cmd.Flags().Changed(FlagOutput) {
		opts.OutputDir = f.output
	}
	if cmd.Flags().Changed(FlagOverwrite) {
		opts.Overwrite = f.overwrite
	}
	if cmd.Flags().Changed(FlagTemplates) {
		opts.TemplatesDir = f.templates
	}
	return opts
}

func newGenerateCmd(s *state) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate a CLI program from a configuration",
		Long: `Generate source files for one or more target languages.

By default the language named in the configuration is generated into the
output directory. With several --target flags or --all, each target is
written to its own subdirectory named after the target.

Existing files are left alone unless --overwrite is given. The hooks file
holding command implementations is never overwritten.

Examples:
  clismith generate clismith.yaml
  clismith generate clismith.yaml -o ./out --target go
  clismith generate clismith.yaml --all -o ./out
  clismith generate clismith.yaml --overwrite --skip README.md
  clismith generate clismith.yaml --dry-run`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := f.options(cmd, s, args[0])
			result, err := app.Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			reportGenerate(s.out, result, opts.DryRun)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func reportGenerate(p *printer, result *app.GenerateResult, dryRun bool) {
	for _, tr := range result.Targets {
		if dryRun {
			p.header("Dry run: " + tr.Target)
			for _, dir := range tr.Directories {
				p.progress("mkdir %s", relTo(tr.OutputDir, dir))
			}
			for _, f := range tr.DryRunFiles {
				rel := relTo(tr.OutputDir, f.Path)
				switch {
				case f.WouldSkip:
					p.info("  skip       %s", rel)
				case f.WouldOverwrite:
					p.info("  overwrite  %s (%s)", rel, formatBytes(int64(len(f.Content))))
				default:
					p.info("  create     %s (%s)", rel, formatBytes(int64(len(f.Content))))
				}
			}
			continue
		}
		p.success("%s: %s created, %d overwritten, %d skipped, %d preserved, %d ignored in %s",
			tr.Target, plural(tr.FilesCreated, "file"), tr.FilesOverwritten,
			tr.FilesSkipped, tr.FilesPreserved, tr.FilesIgnored, tr.OutputDir)
		if tr.FilesSkipped > 0 {
			p.warning("%s left unchanged; use --%s to replace them", plural(tr.FilesSkipped, "existing file"), FlagOverwrite)
		}
	}
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
