package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tacogips/clismith/internal/app"
)

func newWatchCmd(s *state) *cobra.Command {
	f := &generateFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Regenerate whenever the configuration or templates change",
		Long: `Generate once, then keep regenerating while the configuration file or
the --templates directory changes. Errors are reported and watching
continues. Stop with Ctrl-C.

Examples:
  clismith watch clismith.yaml -o ./out --overwrite
  clismith watch clismith.yaml --templates ./templates --all -o ./out`,
		Args: requireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, s, app.WatchOptions{
				GenerateOptions: f.options(cmd, s, args[0]),
				Debounce:        debounce,
			})
		},
	}
	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, FlagDebounce, app.DefaultDebounce, DescDebounce)
	return cmd
}

func runWatch(ctx context.Context, s *state, opts app.WatchOptions) error {
	opts.OnGenerate = func(result *app.GenerateResult, err error) {
		if err != nil {
			s.out.failure(err)
			return
		}
		reportGenerate(s.out, result, opts.DryRun)
	}
	s.out.progress("Watching %s (Ctrl-C to stop)", opts.ConfigPath)
	return app.Watch(ctx, opts)
}
