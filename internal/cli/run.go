package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/mastopress/internal/scheduler"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run sync passes until interrupted",
		Long: `Run a sync pass immediately, then repeat it after the configured interval.

Passes never overlap. SIGINT or SIGTERM stops the loop after the current
pass is interrupted. A failure to persist tracked state is fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLoop(ctx, rootOpts, cmd)
		},
	}

	return cmd
}

func runLoop(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	return scheduler.New(a.engine, a.cfg.Sync.Interval, a.logger).Run(ctx)
}
